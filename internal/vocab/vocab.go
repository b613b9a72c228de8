package vocab

// Polarity identifies which keyword set a word belongs to.
type Polarity string

const (
	Positive Polarity = "positive"
	Negative Polarity = "negative"
)

// Vocabulary holds the positive and negative keyword sets used by the
// keyword classification strategies. Membership is what matters; order is
// irrelevant. A word may legitimately appear in both sets — scoring
// tolerates that by plain summation.
type Vocabulary struct {
	Positive []string
	Negative []string
}

// Keywords returns the set for the given polarity.
func (v Vocabulary) Keywords(p Polarity) []string {
	if p == Positive {
		return v.Positive
	}
	return v.Negative
}

// Default returns the fixed seed vocabulary. It is both the static
// strategy's keyword list and the content a fresh store is seeded with.
func Default() Vocabulary {
	return Vocabulary{
		Positive: []string{
			"cura", "descoberta", "ajudou", "vitória", "solidariedade", "avançou",
			"reconhecimento", "conquista", "inovação", "superação", "melhoria",
			"comunidade", "ajuda", "preservação", "vacinado", "campanha",
			"educação", "recuperação", "aliança", "progresso", "acolhimento",
			"inclusão", "emprego", "renovação", "acordo", "projeto social",
			"salvamento", "renascimento", "ajuda humanitária", "medicação",
			"apoio", "expansão",
		},
		Negative: []string{
			"tragédia", "morte", "assassinato", "crime", "violência", "desastre",
			"incêndio", "fogo", "desabamento", "acidente", "explosão",
			"tragicamente", "colapso", "guerra", "conflito", "corrupção",
			"fraude", "crise", "falência", "dano", "assalto", "ferido",
			"infecção", "envenenamento", "atentado", "caos", "inundação",
			"desespero", "lockdown", "pandemia", "falta de", "explosivo",
			"repressão", "desabrigo", "enxurrada", "tragédias ambientais",
		},
	}
}
