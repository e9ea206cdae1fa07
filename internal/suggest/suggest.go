// Package suggest is the suggestion collaborator contract: something that
// produces candidate mission descriptors for a character power. The engine
// never depends on how candidates were produced; a fetch failure surfaces as
// an empty list, not an error path.
package suggest

import (
	"context"

	"github.com/Cortelete/tcc/internal/engine"
)

type Source interface {
	Suggestions(ctx context.Context, power engine.Power) ([]engine.Suggestion, error)
}

// Catalog is the built-in static source, keyed by power. It stands in for
// the remote generative endpoint and doubles as its offline fallback.
type Catalog struct{}

func (Catalog) Suggestions(_ context.Context, power engine.Power) ([]engine.Suggestion, error) {
	s, ok := catalog[power]
	if !ok {
		return nil, nil
	}
	return append([]engine.Suggestion(nil), s...), nil
}

var catalog = map[engine.Power][]engine.Suggestion{
	engine.PowerFocus: {
		{Name: "Modo Foco", Description: "Trabalhe 25 minutos sem distrações.", Reminder: engine.ReminderSensitive},
		{Name: "Tela Zero", Description: "Fique 30 minutos longe de telas.", Reminder: engine.ReminderAlarm},
		{Name: "Uma Coisa Só", Description: "Termine uma tarefa antes de começar outra.", Reminder: engine.ReminderSensitive},
	},
	engine.PowerMemory: {
		{Name: "Diário Rápido", Description: "Anote 3 coisas que aconteceram hoje.", Reminder: engine.ReminderAlarm},
		{Name: "Lista do Amanhã", Description: "Planeje o dia de amanhã em 5 itens.", Reminder: engine.ReminderSensitive},
		{Name: "Revisão da Noite", Description: "Revise o que aprendeu hoje por 10 minutos.", Reminder: engine.ReminderAlarm},
	},
	engine.PowerCalm: {
		{Name: "Respiração 4-7-8", Description: "Faça 4 ciclos de respiração profunda.", Reminder: engine.ReminderSensitive},
		{Name: "Pausa Verde", Description: "Passe 10 minutos ao ar livre.", Reminder: engine.ReminderAlarm},
		{Name: "Desacelerar", Description: "Alongue-se por 5 minutos antes de dormir.", Reminder: engine.ReminderSensitive},
	},
	engine.PowerPatient: {
		{Name: "Passo a Passo", Description: "Divida uma tarefa grande em 3 partes.", Reminder: engine.ReminderSensitive},
		{Name: "Espera Ativa", Description: "Use uma espera do dia para respirar fundo.", Reminder: engine.ReminderAlarm},
		{Name: "Celebrar Pequeno", Description: "Registre uma pequena vitória de hoje.", Reminder: engine.ReminderSensitive},
	},
}
