package mailer

import (
	"encoding/base64"
	"strings"
)

const mimeBoundary = "__OPTISTYLE_BOUNDARY__"

// attachment is a file carried inside the MIME message.
type attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// buildMIME assembles a raw multipart/mixed message (HTML body plus base64
// attachments) in the exact form SES raw sending consumes.
func buildMIME(from, to, subject, htmlBody string, attachments []attachment) []byte {
	var b strings.Builder

	header := []string{
		"From: OptiStyle <" + from + ">",
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: multipart/mixed; boundary="` + mimeBoundary + `"`,
		"",
		"--" + mimeBoundary,
		`Content-Type: text/html; charset="UTF-8"`,
		"Content-Transfer-Encoding: 7bit",
		"",
		htmlBody,
		"",
	}
	for _, line := range header {
		b.WriteString(line)
		b.WriteString("\r\n")
	}

	for _, att := range attachments {
		b.WriteString("--" + mimeBoundary + "\r\n")
		b.WriteString("Content-Type: " + att.ContentType + "\r\n")
		b.WriteString("Content-Transfer-Encoding: base64\r\n")
		b.WriteString(`Content-Disposition: attachment; filename="` + att.Filename + `"` + "\r\n")
		b.WriteString("\r\n")
		b.WriteString(wrapBase64(base64.StdEncoding.EncodeToString(att.Content)))
		b.WriteString("\r\n")
	}

	b.WriteString("--" + mimeBoundary + "--\r\n")
	return []byte(b.String())
}

// wrapBase64 folds encoded content at 76 columns per RFC 2045.
func wrapBase64(s string) string {
	const lineLen = 76
	var b strings.Builder
	for len(s) > lineLen {
		b.WriteString(s[:lineLen])
		b.WriteString("\r\n")
		s = s[lineLen:]
	}
	b.WriteString(s)
	return b.String()
}
