package transcribe

import "context"

// Corrector is the grammar-correction collaborator. The pipeline is
// indifferent to whether text was corrected; it only needs
// sentence-terminal punctuation to stay meaningful. A failing Corrector is
// logged and the original text used.
type Corrector interface {
	Correct(ctx context.Context, text string) (string, error)
}

// NopCorrector returns text unchanged. Used when no correction service is
// configured.
type NopCorrector struct{}

// Correct implements Corrector.
func (NopCorrector) Correct(_ context.Context, text string) (string, error) {
	return text, nil
}
