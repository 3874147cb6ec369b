package speaker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func stampWords(start float64, words ...string) []WordStamp {
	out := make([]WordStamp, 0, len(words))
	for i, w := range words {
		out = append(out, WordStamp{
			Word:  w,
			Start: start + float64(i),
			End:   start + float64(i) + 0.9,
		})
	}
	return out
}

func TestAlignSentences(t *testing.T) {
	t.Run("should map sentences to the segment covering their words", func(t *testing.T) {
		words := append(
			stampWords(0, "hola", "como", "estas", "hoy"),
			stampWords(10, "muy", "bien", "gracias", "amiga")...)
		segments := []Segment{
			{Start: 0, End: 5, SpeakerID: "SPEAKER_00"},
			{Start: 9, End: 15, SpeakerID: "SPEAKER_01"},
		}

		ids := AlignSentences([]string{"Hola como estas hoy", "Muy bien gracias amiga"}, words, segments)

		assert.Equal(t, []string{"SPEAKER_00", "SPEAKER_01"}, ids)
	})

	t.Run("should leave unlocatable sentences unassigned", func(t *testing.T) {
		words := stampWords(0, "hola", "como", "estas")
		segments := []Segment{{Start: 0, End: 5, SpeakerID: "SPEAKER_00"}}

		ids := AlignSentences([]string{"Hola como estas", "Nada de esto aparece"}, words, segments)

		require.Len(t, ids, 2)
		assert.Equal(t, "SPEAKER_00", ids[0])
		assert.Equal(t, "", ids[1])
	})

	t.Run("should strip punctuation from timestamped words", func(t *testing.T) {
		words := []WordStamp{
			{Word: "Hola,", Start: 0, End: 0.5},
			{Word: "como", Start: 1, End: 1.5},
			{Word: "estas?", Start: 2, End: 2.5},
		}
		segments := []Segment{{Start: 0, End: 3, SpeakerID: "SPEAKER_00"}}

		ids := AlignSentences([]string{"Hola como estas"}, words, segments)

		assert.Equal(t, []string{"SPEAKER_00"}, ids)
	})

	t.Run("should return nil without audio evidence", func(t *testing.T) {
		assert.Nil(t, AlignSentences([]string{"Hola"}, nil, nil))
	})
}

func TestMapSpeakers(t *testing.T) {
	t.Run("should assign the busier identifier to the introducing name", func(t *testing.T) {
		attrs := []Attribution{
			{Sentence: "Hola, soy Maria"},
			{Sentence: "Qué bonito día"},
			{Sentence: "Sí, me encanta"},
			{Sentence: "Vamos al mercado"},
		}
		audioIDs := []string{"S0", "S0", "S1", "S0"}

		mapping := MapSpeakers(audioIDs, attrs, []string{"Carlos", "Maria"}, zap.NewNop())

		require.NotNil(t, mapping)
		assert.Equal(t, "Maria", mapping["S0"])
		assert.Equal(t, "Carlos", mapping["S1"])
	})

	t.Run("should refuse three or more participants", func(t *testing.T) {
		attrs := []Attribution{{Sentence: "Hola, soy Maria"}, {Sentence: "Adiós"}}
		audioIDs := []string{"S0", "S1"}

		mapping := MapSpeakers(audioIDs, attrs, []string{"Ana", "Carlos", "Maria"}, nil)

		assert.Nil(t, mapping)
	})

	t.Run("should refuse a third audio identifier", func(t *testing.T) {
		attrs := []Attribution{
			{Sentence: "Hola, soy Maria"},
			{Sentence: "Qué tal"},
			{Sentence: "Bien"},
		}
		audioIDs := []string{"S0", "S1", "S2"}

		mapping := MapSpeakers(audioIDs, attrs, []string{"Carlos", "Maria"}, nil)

		assert.Nil(t, mapping)
	})

	t.Run("should refuse when no name appears in the opening sentences", func(t *testing.T) {
		attrs := []Attribution{{Sentence: "Qué bonito día"}, {Sentence: "Sí"}}
		audioIDs := []string{"S0", "S1"}

		mapping := MapSpeakers(audioIDs, attrs, []string{"Carlos", "Maria"}, nil)

		assert.Nil(t, mapping)
	})

	t.Run("should refuse mismatched lengths", func(t *testing.T) {
		attrs := []Attribution{{Sentence: "Hola, soy Maria"}}

		assert.Nil(t, MapSpeakers([]string{"S0", "S1"}, attrs, []string{"Carlos", "Maria"}, nil))
	})
}

func TestFuse(t *testing.T) {
	t.Run("should prefer audio labels where mapped", func(t *testing.T) {
		attrs := []Attribution{
			{Sentence: "Hola", Speaker: "Maria", Phase: PhaseDialog},
			{Sentence: "Adiós", Speaker: "Maria", Phase: PhaseDialog},
		}
		mapping := map[string]string{"S1": "Carlos"}

		fused := Fuse(attrs, []string{"", "S1"}, mapping)

		assert.Equal(t, "Maria", fused[0].Speaker)
		assert.Equal(t, "Carlos", fused[1].Speaker)
	})

	t.Run("should never relabel the narrator", func(t *testing.T) {
		attrs := []Attribution{{Sentence: "Uno dos", Speaker: "Narrator", Phase: PhaseNarrator}}

		fused := Fuse(attrs, []string{"S0"}, map[string]string{"S0": "Maria"})

		assert.Equal(t, "Narrator", fused[0].Speaker)
	})

	t.Run("should pass attributions through without a mapping", func(t *testing.T) {
		attrs := []Attribution{{Sentence: "Hola", Speaker: "Maria"}}

		assert.Equal(t, attrs, Fuse(attrs, []string{"S0"}, nil))
	})
}

func TestEngine_AttributeWithAudio(t *testing.T) {
	t.Run("should degrade to text-only without audio evidence", func(t *testing.T) {
		engine := NewEngine()

		attrs := engine.AttributeWithAudio("Hola, soy Maria. Adiós.", []string{"Maria"}, nil, nil, Options{})

		require.Len(t, attrs, 2)
		assert.Equal(t, "Maria", attrs[0].Speaker)
	})

	t.Run("should override alternation with diarized speakers", func(t *testing.T) {
		engine := NewEngine()
		text := "Hola como estas amiga Maria. Muy bien gracias y usted. Vamos juntas al mercado."
		words := append(
			stampWords(0, "hola", "como", "estas", "amiga", "maria"),
			append(
				stampWords(10, "muy", "bien", "gracias", "y", "usted"),
				stampWords(20, "vamos", "juntas", "al", "mercado")...)...)
		segments := []Segment{
			{Start: 0, End: 6, SpeakerID: "S0"},
			{Start: 9, End: 16, SpeakerID: "S1"},
			{Start: 19, End: 25, SpeakerID: "S0"},
		}

		attrs := engine.AttributeWithAudio(text, []string{"Carlos", "Maria"}, words, segments, Options{})

		require.Len(t, attrs, 3)
		// Text alternation alone would open with Carlos; the diarization
		// maps the busier voice to Maria, who is named in the opening.
		assert.Equal(t, []string{"Maria", "Carlos", "Maria"}, labels(attrs))
	})
}
