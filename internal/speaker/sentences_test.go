package speaker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSentences(t *testing.T) {
	t.Run("should split on terminal punctuation", func(t *testing.T) {
		sentences := SplitSentences("Hola. Adiós.")

		assert.Equal(t, []string{"Hola", "Adiós"}, sentences)
	})

	t.Run("should treat exclamations and questions as terminators", func(t *testing.T) {
		sentences := SplitSentences("¡Qué bien! ¿Cómo estás? Muy bien.")

		assert.Equal(t, []string{"¡Qué bien", "¿Cómo estás", "Muy bien"}, sentences)
	})

	t.Run("should strip trailing terminal punctuation", func(t *testing.T) {
		sentences := SplitSentences("Una sola frase...")

		assert.Equal(t, []string{"Una sola frase"}, sentences)
	})

	t.Run("should drop empty fragments", func(t *testing.T) {
		sentences := SplitSentences("Hola.   . Adiós.")

		assert.Equal(t, []string{"Hola", "Adiós"}, sentences)
	})

	t.Run("should return nothing for empty input", func(t *testing.T) {
		assert.Empty(t, SplitSentences("   "))
	})
}

func TestCountWords(t *testing.T) {
	t.Run("should count word tokens", func(t *testing.T) {
		assert.Equal(t, 4, CountWords("el perro corre rápido"))
	})

	t.Run("should ignore punctuation", func(t *testing.T) {
		assert.Equal(t, 2, CountWords("¿Cómo estás?"))
	})

	t.Run("should count numbers as words", func(t *testing.T) {
		assert.Equal(t, 2, CountWords("Radio 5"))
	})

	t.Run("should return zero for empty sentence", func(t *testing.T) {
		assert.Equal(t, 0, CountWords(""))
	})
}
