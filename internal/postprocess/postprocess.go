// Package postprocess cleans raw replies from generative models before they
// are shown as a translation or parsed as a language code.
package postprocess

import (
	"regexp"
	"strings"
)

// Clean removes reasoning blocks and instruction echoes that local models
// emit even when told not to, and trims the result.
func Clean(text string) string {
	text = removeThinkingBlocks(text)
	text = removeInstructionEchoes(text)
	return strings.TrimSpace(text)
}

// StripQuotes trims surrounding whitespace and drops one leading and one
// trailing quote character (" or '), independently of each other. Models
// sometimes echo the quoted text from the prompt.
func StripQuotes(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, `"`) || strings.HasPrefix(text, `'`) {
		text = text[1:]
	}
	if strings.HasSuffix(text, `"`) || strings.HasSuffix(text, `'`) {
		text = text[:len(text)-1]
	}
	return strings.TrimSpace(text)
}

// --- thinking blocks ---

// Each tag variant is listed explicitly because RE2 has no backreferences.
var thinkingBlockRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>|<reflection>.*?</reflection>`,
)

// truncatedThinkingRe matches an opened tag whose closing tag never came.
var truncatedThinkingRe = regexp.MustCompile(
	`(?is)(?:<thinking>|<think>|<reasoning>|<reflection>).*$`,
)

func removeThinkingBlocks(text string) string {
	text = thinkingBlockRe.ReplaceAllString(text, "")
	text = truncatedThinkingRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// --- instruction echoes ---

// Anchored at the start and requiring a colon to avoid eating real content.
var echoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^here(?:'s| is)(?: the)? (?:translated )?(?:translation|text|language code)\s*:`),
	regexp.MustCompile(`(?i)^(?:the )?(?:translation|translated text|language code|detected language)\s*(?:is)?\s*:`),
	regexp.MustCompile(`(?i)^(?:certainly|sure|of course)[,.]? here(?:'s| is)(?: the)? (?:translated )?(?:translation|text)\s*:`),
}

func removeInstructionEchoes(text string) string {
	for _, re := range echoPatterns {
		if loc := re.FindStringIndex(text); loc != nil && loc[0] == 0 {
			text = strings.TrimSpace(text[loc[1]:])
		}
	}
	return text
}
