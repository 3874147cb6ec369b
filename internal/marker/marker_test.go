package marker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRules(t *testing.T) {
	t.Run("should return narrator rules in table order", func(t *testing.T) {
		rules := Rules(Narrator)

		require.NotEmpty(t, rules)
		assert.Equal(t, "section", rules[0].Name)
		for _, r := range rules {
			assert.Equal(t, Narrator, r.Kind)
		}
	})

	t.Run("should keep kinds separated", func(t *testing.T) {
		for _, r := range Rules(Closing) {
			assert.Equal(t, Closing, r.Kind)
		}
		for _, r := range Rules(Intro) {
			assert.Equal(t, Intro, r.Kind)
		}
	})
}

func TestFindAll(t *testing.T) {
	t.Run("should find english narrator announcement", func(t *testing.T) {
		text := "Hola a todos. Section 3 Unit 2 Radio 5. Hola, soy Maria."

		matches := FindAll(text, Narrator)

		require.NotEmpty(t, matches)
		assert.Equal(t, "Section 3 Unit 2 Radio 5.", text[matches[0].Start:matches[0].End])
	})

	t.Run("should find spanish narrator cognates", func(t *testing.T) {
		text := "Sección 4 unidad 1 radio 2. Hola, esto es un episodio."

		matches := FindAll(text, Narrator)

		require.NotEmpty(t, matches)
		assert.Equal(t, 0, matches[0].Start)
	})

	t.Run("should find closing template with farewell", func(t *testing.T) {
		text := "Fue un gusto. Gracias por escuchar este episodio. Hasta pronto. Hola, te doy la bienvenida a otro."

		matches := FindAll(text, Closing)

		require.Len(t, matches, 1)
		assert.Equal(t, "Gracias por escuchar este episodio. Hasta pronto.",
			text[matches[0].Start:matches[0].End])
	})

	t.Run("should not match closing phrase without farewell", func(t *testing.T) {
		text := "Gracias por escuchar este episodio. Ahora seguimos con la historia."

		matches := FindAll(text, Closing)

		assert.Empty(t, matches)
	})

	t.Run("should find multiple introductions in text order within a rule", func(t *testing.T) {
		text := "Hola, te doy la bienvenida a la radio. Más tarde. Hola, te doy la bienvenida a otra historia."

		matches := FindAll(text, Intro)

		require.GreaterOrEqual(t, len(matches), 2)
		assert.Less(t, matches[0].Start, matches[1].Start)
	})
}

func TestFindFirst(t *testing.T) {
	t.Run("should return first intro match", func(t *testing.T) {
		text := "Algo antes. Te doy la bienvenida a este episodio."

		m, ok := FindFirst(text, Intro)

		require.True(t, ok)
		assert.Equal(t, "te-doy-bienvenida", m.Rule.Name)
	})

	t.Run("should report no match", func(t *testing.T) {
		_, ok := FindFirst("nada que ver aquí", Closing)

		assert.False(t, ok)
	})
}

func TestHasIntroHint(t *testing.T) {
	t.Run("should detect welcome phrasing", func(t *testing.T) {
		assert.True(t, HasIntroHint("Hola, te doy la bienvenida a la radio"))
		assert.True(t, HasIntroHint("Soy Maria y esta es mi historia"))
	})

	t.Run("should reject plain dialog", func(t *testing.T) {
		assert.False(t, HasIntroHint("El mercado estaba lleno de gente"))
	})
}
