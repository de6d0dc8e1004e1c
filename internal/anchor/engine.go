package anchor

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"scenetrack/internal/logging"
	"scenetrack/internal/scene"
	"scenetrack/internal/textutil"
)

// Mode selects how located patterns are projected back to raw offsets.
type Mode string

const (
	// ModeMapped picks the occurrences nearest the scene's previous position
	// and projects them through the OffsetMapper table.
	ModeMapped Mode = "mapped"
	// ModeLegacy takes the first start and last end occurrence and re-projects
	// by searching the raw text for the boundary tokens.
	ModeLegacy Mode = "legacy"
)

// ParseMode converts a configuration value to a Mode.
func ParseMode(value string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(value))); m {
	case "":
		return ModeMapped, nil
	case ModeMapped, ModeLegacy:
		return m, nil
	default:
		return "", fmt.Errorf("unsupported anchoring mode %q", value)
	}
}

// Stock tuning values.
const (
	DefaultMinFingerprint  = 10
	DefaultPatternRatio    = 0.3
	DefaultPatternMax      = 50
	DefaultCommitThreshold = 5
)

// Options tunes the engine.
type Options struct {
	Mode Mode
	// MinFingerprint is the shortest normalized scene text worth matching.
	MinFingerprint int
	// PatternRatio and PatternMax bound the start/end pattern length.
	PatternRatio float64
	PatternMax   int
	// CommitThreshold is the shift a located range must exceed, on either
	// boundary, before it overwrites the stored offsets.
	CommitThreshold int
	// CommitOnDrift also commits smaller shifts when the stored range no
	// longer covers the fingerprinted content. Mapped mode only.
	CommitOnDrift bool
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		Mode:            ModeMapped,
		MinFingerprint:  DefaultMinFingerprint,
		PatternRatio:    DefaultPatternRatio,
		PatternMax:      DefaultPatternMax,
		CommitThreshold: DefaultCommitThreshold,
		CommitOnDrift:   true,
	}
}

func (o Options) withDefaults() Options {
	if o.Mode == "" {
		o.Mode = ModeMapped
	}
	if o.MinFingerprint <= 0 {
		o.MinFingerprint = DefaultMinFingerprint
	}
	if o.PatternRatio <= 0 || o.PatternRatio > 1 {
		o.PatternRatio = DefaultPatternRatio
	}
	if o.PatternMax <= 0 {
		o.PatternMax = DefaultPatternMax
	}
	if o.CommitThreshold < 0 {
		o.CommitThreshold = DefaultCommitThreshold
	}
	return o
}

// Status classifies what happened to one scene during a pass.
type Status int

const (
	// StatusStable means the scene was located within the commit threshold.
	StatusStable Status = iota
	// StatusMoved means new offsets were committed.
	StatusMoved
	// StatusFrozen means the stored offsets were unusable.
	StatusFrozen
	// StatusDegenerate means the scene text was blank or too short.
	StatusDegenerate
	// StatusUnanchored means the patterns were not found.
	StatusUnanchored
)

func (s Status) String() string {
	switch s {
	case StatusStable:
		return "stable"
	case StatusMoved:
		return "moved"
	case StatusFrozen:
		return "frozen"
	case StatusDegenerate:
		return "degenerate"
	case StatusUnanchored:
		return "unanchored"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText renders the status name in JSON output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Range is a half-open rune range.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Outcome reports the result for one scene.
type Outcome struct {
	SceneID string `json:"scene_id"`
	Status  Status `json:"status"`
	// Err is one of the package sentinels, or nil for stable and moved scenes.
	Err error `json:"-"`
	Old Range `json:"old"`
	// New is the range the scene holds after the pass.
	New Range `json:"new"`
	// Located is the range the patterns matched, committed or not.
	Located *Range `json:"located,omitempty"`
	// Similarity is the cosine similarity between the fingerprinted text and
	// the text the scene covers after the pass.
	Similarity float64 `json:"similarity"`
}

// Reason returns the error text, or an empty string.
func (o Outcome) Reason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Pass is the result of re-anchoring a scene set.
type Pass struct {
	Outcomes []Outcome
	Updates  []scene.OffsetUpdate
}

// Count returns how many outcomes carry status.
func (p Pass) Count(status Status) int {
	n := 0
	for _, o := range p.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Engine re-anchors scenes. It is stateless between passes and safe to reuse.
type Engine struct {
	opts   Options
	logger *slog.Logger
}

// NewEngine builds an engine. Zero option fields fall back to the defaults.
func NewEngine(opts Options, logger *slog.Logger) *Engine {
	return &Engine{
		opts:   opts.withDefaults(),
		logger: logging.NewComponentLogger(logger, "anchor"),
	}
}

// Options returns the effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// Reanchor fingerprints every scene at its stored offsets in text and
// relocates that content within the same text.
func (e *Engine) Reanchor(text string, scenes []scene.Scene) Pass {
	return e.ReanchorEdit(text, text, scenes)
}

// ReanchorEdit fingerprints every scene at its stored offsets in prev, the
// snapshot those offsets were committed against, and relocates that content in
// text. Bounds are checked against prev.
func (e *Engine) ReanchorEdit(prev, text string, scenes []scene.Scene) Pass {
	p := &pass{
		opts:    e.opts,
		text:    []rune(text),
		target:  NewOffsetMapper(text),
		source:  []rune(prev),
		rawText: text,
	}
	p.window = newEditWindow(p.source, p.text)

	out := Pass{Outcomes: make([]Outcome, 0, len(scenes))}
	for _, sc := range scenes {
		outcome := p.run(sc)
		e.logOutcome(outcome)
		out.Outcomes = append(out.Outcomes, outcome)
		if outcome.Status == StatusMoved {
			out.Updates = append(out.Updates, scene.OffsetUpdate{
				ID:    sc.ID,
				Start: outcome.New.Start,
				End:   outcome.New.End,
			})
		}
	}
	e.logger.Debug("re-anchoring pass complete",
		logging.Args(
			logging.Int("scenes", len(scenes)),
			logging.Int("moved", out.Count(StatusMoved)),
			logging.Int("unanchored", out.Count(StatusUnanchored)),
			logging.Int("frozen", out.Count(StatusFrozen)),
		)...,
	)
	return out
}

func (e *Engine) logOutcome(o Outcome) {
	if o.Status == StatusFrozen {
		logging.WarnWithContext(e.logger, "scene offsets frozen", "scene_frozen",
			logging.String(logging.FieldSceneID, o.SceneID),
			logging.Int("start_offset", o.Old.Start),
			logging.Int("end_offset", o.Old.End),
			logging.String(logging.FieldErrorHint, "set the scene bounds again"),
			logging.String(logging.FieldImpact, "scene no longer follows edits"),
		)
		return
	}
	e.logger.Debug("scene re-anchored",
		logging.Args(
			logging.String(logging.FieldSceneID, o.SceneID),
			logging.String("status", o.Status.String()),
			logging.Int("start_offset", o.New.Start),
			logging.Int("end_offset", o.New.End),
			logging.Float64("similarity", o.Similarity),
		)...,
	)
}

// pass carries the per-pass state shared by every scene.
type pass struct {
	opts    Options
	text    []rune
	rawText string
	source  []rune
	target  *OffsetMapper
	window  editWindow
}

func (p *pass) run(sc scene.Scene) Outcome {
	old := Range{Start: sc.Start, End: sc.End}
	out := Outcome{SceneID: sc.ID, Status: StatusStable, Old: old, New: old}

	if sc.End <= sc.Start || sc.Start >= len(p.source) {
		out.Status, out.Err = StatusFrozen, ErrUnrecoverableSpan
		return out
	}

	start := clamp(sc.Start, 0, len(p.source))
	end := clamp(sc.End, 0, len(p.source))
	slice := p.source[start:end]
	if textutil.IsBlank(string(slice)) {
		out.Status, out.Err = StatusDegenerate, ErrDegenerateInput
		return out
	}
	body := string(slice)
	normalized := []rune(textutil.Normalize(body))
	if len(normalized) < p.opts.MinFingerprint {
		out.Status, out.Err = StatusDegenerate, ErrDegenerateInput
		out.Similarity = textutil.TextSimilarity(body, p.covered(old))
		return out
	}

	n := min(p.opts.PatternMax, int(p.opts.PatternRatio*float64(len(normalized))))
	n = max(n, 1)
	startPattern := normalized[:n]
	endPattern := normalized[len(normalized)-n:]

	var located Range
	var ok bool
	if p.opts.Mode == ModeLegacy {
		located, ok = p.locateLegacy(old, startPattern, endPattern)
	} else {
		located, ok = p.locateMapped(slice, start, end, startPattern, endPattern)
	}
	if !ok {
		out.Status, out.Err = StatusUnanchored, ErrAnchorNotFound
		out.Similarity = textutil.TextSimilarity(body, p.covered(old))
		return out
	}
	out.Located = &located

	if p.shouldCommit(old, located, normalized) {
		out.Status = StatusMoved
		out.New = located
	}
	out.Similarity = textutil.TextSimilarity(body, p.covered(out.New))
	return out
}

func (p *pass) shouldCommit(old, located Range, normalized []rune) bool {
	if located == old {
		return false
	}
	threshold := p.opts.CommitThreshold
	if abs(located.Start-old.Start) > threshold || abs(located.End-old.End) > threshold {
		return true
	}
	if p.opts.Mode != ModeMapped || !p.opts.CommitOnDrift {
		return false
	}
	return textutil.Normalize(p.covered(old)) != string(normalized)
}

// locateMapped finds the start pattern occurrence nearest the scene's previous
// start and the end pattern occurrence nearest its previous end, both carried
// across the edit window into the new text, then maps them back to raw
// offsets. The slice's own leading and trailing whitespace is re-attached
// where the new text still has it.
func (p *pass) locateMapped(slice []rune, start, end int, startPattern, endPattern []rune) (Range, bool) {
	lead := countSpace(slice, false)
	trail := countSpace(slice, true)
	startHint := p.target.NormalizedIndex(p.window.shiftStart(start + lead))
	endHint := p.target.NormalizedIndex(p.window.shiftEnd(end - trail))

	startIdx, found := nearest(p.target.occurrences(startPattern), startHint, func(int) bool { return true })
	if !found {
		return Range{}, false
	}
	endIdx, found := nearest(p.target.occurrences(endPattern), endHint-len(endPattern), func(i int) bool {
		return i+len(endPattern) > startIdx
	})
	if !found {
		return Range{}, false
	}

	newStart := p.target.RawIndex(startIdx)
	newEnd := p.target.RawEnd(endIdx + len(endPattern))
	for k := 0; k < lead && newStart > 0 && unicode.IsSpace(p.text[newStart-1]); k++ {
		newStart--
	}
	for k := 0; k < trail && newEnd < len(p.text) && unicode.IsSpace(p.text[newEnd]); k++ {
		newEnd++
	}
	if newEnd <= newStart {
		return Range{}, false
	}
	return Range{Start: newStart, End: newEnd}, true
}

// locateLegacy requires the first start occurrence to precede the end of the
// last end occurrence, then searches the raw text for the first token of the
// start pattern and the last token of the end pattern. A token that is not
// found keeps the previous offset.
func (p *pass) locateLegacy(old Range, startPattern, endPattern []rune) (Range, bool) {
	starts := p.target.occurrences(startPattern)
	ends := p.target.occurrences(endPattern)
	if len(starts) == 0 || len(ends) == 0 {
		return Range{}, false
	}
	if ends[len(ends)-1]+len(endPattern) <= starts[0] {
		return Range{}, false
	}

	located := old
	startToken := strings.Split(string(startPattern), " ")[0]
	if i := strings.Index(p.rawText, startToken); i >= 0 {
		located.Start = utf8.RuneCountInString(p.rawText[:i])
	}
	endTokens := strings.Split(string(endPattern), " ")
	endToken := endTokens[len(endTokens)-1]
	if i := strings.LastIndex(p.rawText, endToken); i >= 0 {
		located.End = utf8.RuneCountInString(p.rawText[:i]) + utf8.RuneCountInString(endToken)
	}
	if located.End <= located.Start {
		return Range{}, false
	}
	return located, true
}

// editWindow is the single changed region between two snapshots: everything
// before prefix and the last suffix runes are shared.
type editWindow struct {
	prefix int
	suffix int
	oldLen int
	newLen int
}

func newEditWindow(prev, text []rune) editWindow {
	limit := min(len(prev), len(text))
	prefix := 0
	for prefix < limit && prev[prefix] == text[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < limit-prefix && prev[len(prev)-1-suffix] == text[len(text)-1-suffix] {
		suffix++
	}
	return editWindow{prefix: prefix, suffix: suffix, oldLen: len(prev), newLen: len(text)}
}

// shift maps a previous offset into the new text. Offsets inside the changed
// region are clamped to it.
func (w editWindow) shift(raw int, preferShift bool) int {
	oldChangeEnd := w.oldLen - w.suffix
	newChangeEnd := w.newLen - w.suffix
	switch {
	case raw < w.prefix:
		return raw
	case raw > oldChangeEnd:
		return raw + w.newLen - w.oldLen
	case raw == oldChangeEnd && (preferShift || raw > w.prefix):
		return newChangeEnd
	case raw == w.prefix:
		return raw
	default:
		return clamp(raw, w.prefix, newChangeEnd)
	}
}

// shiftStart maps a start offset; a start at an insertion point follows the
// inserted text.
func (w editWindow) shiftStart(raw int) int { return w.shift(raw, true) }

// shiftEnd maps an exclusive end offset; an end at an insertion point stays
// before the inserted text.
func (w editWindow) shiftEnd(raw int) int { return w.shift(raw, false) }

// covered returns the text r spans in the new document, clamped.
func (p *pass) covered(r Range) string {
	start := clamp(r.Start, 0, len(p.text))
	end := clamp(r.End, start, len(p.text))
	return string(p.text[start:end])
}

// nearest returns the candidate closest to hint among those accepted by keep.
// Ties go to the earlier candidate.
func nearest(candidates []int, hint int, keep func(int) bool) (int, bool) {
	best, bestDist := 0, -1
	for _, c := range candidates {
		if !keep(c) {
			continue
		}
		if d := abs(c - hint); bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist >= 0
}

func countSpace(runes []rune, fromEnd bool) int {
	n := 0
	for i := range runes {
		r := runes[i]
		if fromEnd {
			r = runes[len(runes)-1-i]
		}
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
