package episode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindHints(t *testing.T) {
	t.Run("should find english section tokens", func(t *testing.T) {
		text := "Primera historia aquí. Section 2 empieza. Luego radio 3 sigue."

		hints := FindHints(text)

		require.Len(t, hints, 2)
		assert.Equal(t, "Section 2", hints[0].Text)
		assert.Equal(t, "radio 3", hints[1].Text)
	})

	t.Run("should find standalone numbers after paragraph breaks", func(t *testing.T) {
		text := "Primera parte.\n\n2.\nSegunda parte."

		hints := FindHints(text)

		require.NotEmpty(t, hints)
	})

	t.Run("should return hints sorted by position", func(t *testing.T) {
		text := "radio 9 al principio. Y section 1 después."

		hints := FindHints(text)

		require.Len(t, hints, 2)
		assert.Less(t, hints[0].Pos, hints[1].Pos)
		assert.Equal(t, "radio 9", hints[0].Text)
	})

	t.Run("should find nothing in plain dialog", func(t *testing.T) {
		assert.Empty(t, FindHints("Hola, soy Maria. Hoy hablamos del mercado."))
	})
}

func TestSplitByHints(t *testing.T) {
	t.Run("should split at each hint", func(t *testing.T) {
		text := "Introducción general. Story 1 la primera historia. Story 2 la segunda historia."
		hints := FindHints(text)
		require.Len(t, hints, 2)

		stories := SplitByHints(text, hints)

		require.Len(t, stories, 3)
		assert.Equal(t, "Introducción general.", stories[0])
		assert.True(t, strings.HasPrefix(stories[1], "Story 1"))
		assert.True(t, strings.HasPrefix(stories[2], "Story 2"))
	})

	t.Run("should return text whole without hints", func(t *testing.T) {
		stories := SplitByHints("sin marcadores", nil)

		assert.Equal(t, []string{"sin marcadores"}, stories)
	})

	t.Run("should drop empty leading story", func(t *testing.T) {
		text := "Story 1 empieza de inmediato."
		hints := FindHints(text)
		require.Len(t, hints, 1)

		stories := SplitByHints(text, hints)

		assert.Equal(t, []string{text}, stories)
	})
}
