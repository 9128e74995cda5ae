package rules

import (
	"github.com/donaldgifford/csfmt/internal/rules/format"
)

func init() {
	// Spacing and line structure.
	Register(&format.TokenSpacing{})
	Register(&format.BracePlacement{})
	Register(&format.StatementLines{})

	// Indentation.
	Register(&format.BlockIndent{})
	Register(&format.SwitchIndent{})
	Register(&format.LabelIndent{})

	// Suppression and wrapping, which override the rules above.
	Register(&format.Suppression{})
	Register(&format.ChainWrap{})
	Register(&format.ConditionalWrap{})
	Register(&format.ParameterWrap{})
	Register(&format.ElasticMembers{})
}
