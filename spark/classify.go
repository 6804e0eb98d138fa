package spark

import "strings"

// imageReplyKind classifies free text received while waiting for an image.
type imageReplyKind int

const (
	// imageReplySkip means the user declined to attach an image.
	imageReplySkip imageReplyKind = iota
	// imageReplyLink means the text looks like an image URL.
	imageReplyLink
	// imageReplyExtra means the text is neither; it is kept as supplementary
	// context rather than rejected, so the form degrades gracefully.
	imageReplyExtra
)

var skipKeywords = map[string]struct{}{
	"no":   {},
	"none": {},
	"n":    {},
}

// classifyImageReply applies the original prefix/keyword rules: a skip keyword
// (case-insensitive), an http(s) link, or anything else as additional info.
func classifyImageReply(text string) imageReplyKind {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if _, ok := skipKeywords[lowered]; ok {
		return imageReplySkip
	}
	if strings.HasPrefix(lowered, "http://") || strings.HasPrefix(lowered, "https://") {
		return imageReplyLink
	}
	return imageReplyExtra
}
