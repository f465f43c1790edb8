// Package oracle drafts reply text for a candidate submission using an
// external text-generation service. The contract is deliberately soft:
// an oracle that cannot produce a usable reply returns an empty string
// (or an error), and the caller skips the candidate.
package oracle

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"karmaforge/internal/config"
	"karmaforge/internal/model"
	"karmaforge/internal/util"
)

// Request carries the extracted context for one candidate.
type Request struct {
	Title    string
	Body     string
	Comments []model.Comment
	Language string // config.LangAuto, LangEnglish, LangHinglish
}

// Oracle generates a short reply for a submission.
type Oracle interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// New builds the oracle selected by the config.
func New(cfg config.OracleConfig) (Oracle, error) {
	switch cfg.Provider {
	case "groq":
		return NewGroq(cfg.APIKey, cfg.Model), nil
	case "gemini":
		return NewGemini(cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("no oracle available for provider %q", cfg.Provider)
	}
}

// SelectTopComments keeps the highest-scoring comments for the prompt:
// 8 when at least 8 are available, else 6 when at least 6, else all.
func SelectTopComments(comments []model.Comment) []model.Comment {
	out := make([]model.Comment, len(comments))
	copy(out, comments)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	switch {
	case len(out) >= 8:
		return out[:8]
	case len(out) >= 6:
		return out[:6]
	default:
		return out
	}
}

// FormatComments renders comments as "[score↑] text" lines, bodies
// flattened to one line and truncated to 200 characters.
func FormatComments(comments []model.Comment) string {
	lines := make([]string, 0, len(comments))
	for _, c := range comments {
		body := util.Truncate(util.NormalizeWhitespace(c.Body), 200)
		lines = append(lines, fmt.Sprintf("[%d↑] %s", c.Score, body))
	}
	return strings.Join(lines, "\n")
}

func languageInstruction(lang string) string {
	switch lang {
	case config.LangHinglish:
		return "IMPORTANT: Write the comment in HINGLISH - Hindi words in Roman script mixed with casual English, the way Indians talk online (e.g. 'bilkul sahi point', 'ekdum mast', 'lmao yaar'). "
	case config.LangEnglish:
		return "IMPORTANT: Write the comment in ENGLISH only, natural and grammatical, internet slang welcome. "
	default:
		return "IMPORTANT: Detect the language and style of the post and its top comments and match it. If they mix Hindi in Roman script with English, reply in Hinglish; otherwise reply in English. "
	}
}

// SystemPrompt is the persona and strategy instruction sent to the model.
func SystemPrompt(lang string) string {
	return "You are a Reddit regular who writes short comments that collect upvotes on any kind of post. " +
		languageInstruction(lang) +
		"Study the top comments to see what tone works on this post: humor for memes, short personal stories for questions, added context for facts and news, hands-on detail for technical topics. " +
		"Rules: one or two sentences at most; add value (humor, insight, or relatability); sound like a real person; " +
		"never be generic ('nice', 'this'), preachy, negative, or a repeat of an existing comment."
}

// UserPrompt renders the candidate context for the model.
func UserPrompt(req Request) string {
	return fmt.Sprintf(
		"Title: %s\n\nContent: %s\n\nTOP COMMENTS WITH UPVOTES:\n%s\n\n"+
			"Analyze what style gets upvoted here, then write ONE comment (1-2 sentences) in that style. Output ONLY the comment text.",
		req.Title, req.Body, FormatComments(SelectTopComments(req.Comments)))
}

// CleanReply normalizes raw model output: anything from the first '#'
// on is dropped, double quotes are removed, whitespace trimmed.
func CleanReply(s string) string {
	if i := strings.Index(s, "#"); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, `"`, "")
	return strings.TrimSpace(s)
}
