// Package validation holds the request-content rules applied at the HTTP
// boundary before anything reaches the coordinator.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yapster-gg/yapster-api/internal/common"
	"github.com/yapster-gg/yapster-api/internal/models"
)

const (
	UsernameMinLength = 3
	UsernameMaxLength = 16
	NameMaxLength     = 20
	PronounsMaxLength = 20
	BioMaxLength      = 200
	PostTextMaxLength = 1000
	MaxPostImages     = 9
	CommentMaxLength  = 500
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	asciiRe    = regexp.MustCompile(`^[\x20-\x7E]+$`)
	tagRe      = regexp.MustCompile(`^[\p{L}\p{N}_]+$`)

	// RTL scripts are not rendered by the client and are rejected.
	rtlRe = regexp.MustCompile(`[\x{0600}-\x{06FF}\x{0750}-\x{077F}\x{08A0}-\x{08FF}\x{0590}-\x{05FF}]`)

	// Exotic whitespace is folded to plain spaces; newlines survive.
	oddSpaceRe = regexp.MustCompile(`[\t\v\x{00A0}\x{2000}-\x{200A}\x{202F}\x{205F}\x{3000}\x{FEFF}]`)
)

func invalid(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, common.ErrInvalidOperation)...)
}

// Username checks length and charset and returns the lowercase form.
func Username(username string) (string, error) {
	if len(username) < UsernameMinLength || len(username) > UsernameMaxLength {
		return "", invalid("username must be between %d and %d characters", UsernameMinLength, UsernameMaxLength)
	}
	if !usernameRe.MatchString(username) {
		return "", invalid("username can only contain letters and numbers")
	}
	return strings.ToLower(username), nil
}

func Name(name string) (string, error) {
	if name == "" {
		return "", nil
	}
	if len(name) > NameMaxLength {
		return "", invalid("name must be %d characters or less", NameMaxLength)
	}
	if !asciiRe.MatchString(name) {
		return "", invalid("name can only contain standard ASCII characters and spaces")
	}
	return name, nil
}

func Pronouns(pronouns string) (string, error) {
	if pronouns == "" {
		return "", nil
	}
	if len(pronouns) > PronounsMaxLength {
		return "", invalid("pronouns must be %d characters or less", PronounsMaxLength)
	}
	if !asciiRe.MatchString(pronouns) {
		return "", invalid("pronouns can only contain standard ASCII characters and spaces")
	}
	return pronouns, nil
}

func Bio(bio string) (string, error) {
	if len(bio) > BioMaxLength {
		return "", invalid("bio must be %d characters or less", BioMaxLength)
	}
	return bio, nil
}

// TextContent sanitizes free text: RTL is rejected, non-standard
// whitespace becomes plain spaces, and the result is length-capped.
func TextContent(text string, maxLen int) (string, error) {
	if text == "" {
		return "", nil
	}
	if rtlRe.MatchString(text) {
		return "", invalid("text contains unsupported RTL characters")
	}
	sanitized := oddSpaceRe.ReplaceAllString(text, " ")
	if len(sanitized) > maxLen {
		return "", invalid("text exceeds maximum length of %d characters", maxLen)
	}
	return sanitized, nil
}

// Tag strips a leading '#', checks the charset and lowercases.
func Tag(tag string) (string, error) {
	tag = strings.TrimPrefix(tag, "#")
	if tag == "" {
		return "", nil
	}
	if !tagRe.MatchString(tag) {
		return "", invalid("tags can only contain letters, numbers, and underscores")
	}
	return strings.ToLower(tag), nil
}

// PostContent validates and normalizes a post body: text or images
// required, at most MaxPostImages images, sanitized text, cleaned tags.
func PostContent(content models.PostContent) (models.PostContent, error) {
	text := strings.TrimSpace(content.Text)

	if text == "" && len(content.Items) == 0 {
		return models.PostContent{}, invalid("post must contain either text or images")
	}
	if len(content.Items) > MaxPostImages {
		return models.PostContent{}, invalid("cannot upload more than %d images", MaxPostImages)
	}

	validText, err := TextContent(text, PostTextMaxLength)
	if err != nil {
		return models.PostContent{}, err
	}

	tags := make([]string, 0, len(content.Tags))
	for _, raw := range content.Tags {
		tag, err := Tag(strings.TrimSpace(raw))
		if err != nil {
			return models.PostContent{}, err
		}
		if tag != "" {
			tags = append(tags, tag)
		}
	}

	items := content.Items
	if items == nil {
		items = []string{}
	}

	return models.PostContent{
		Text:     validText,
		Items:    items,
		Location: strings.TrimSpace(content.Location),
		Tags:     tags,
	}, nil
}

// CommentText validates a comment body.
func CommentText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", invalid("comment text is required")
	}
	return TextContent(text, CommentMaxLength)
}
