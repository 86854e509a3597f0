package llm

import (
	"context"
	"strings"
)

// maxEmailChars bounds the email text forwarded to the model.
const maxEmailChars = 6000

// SummarizeEmail rewrites a raw email in plain English.
func (c *Client) SummarizeEmail(ctx context.Context, emailBody string) (string, error) {
	body := truncateBody(emailBody, maxEmailChars)

	summary, err := c.CompleteWithSystem(ctx, EmailSummarySystemPrompt, EmailSummaryUserPrompt(body))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(summary), nil
}
