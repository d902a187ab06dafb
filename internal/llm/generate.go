package llm

import (
	"context"
	"fmt"
)

// Generate runs one completion and always returns printable text: the model's
// answer, the placeholder, or a visible error line. Failures never propagate,
// so a broken call still leaves an artifact behind.
//
// Once issued the call is not cancelled with ctx; RequestTimeout bounds it.
func Generate(ctx context.Context, c Client, req Request, placeholder string) string {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), RequestTimeout)
	defer cancel()

	completion, err := c.Complete(ctx, req)
	if err != nil {
		if IsTimeout(err) {
			return fmt.Sprintf("❌ Timeout: LLM did not respond within %d seconds. Try again later.", int(RequestTimeout.Seconds()))
		}
		return fmt.Sprintf("❌ LLM error: %v", err)
	}
	return completion.Text(placeholder)
}
