package game

import (
	"mesacirurgica/internal/game/tutorial"
)

// TutorialStep devolve o passo visível, se o tutorial estiver aberto.
func (g *Game) TutorialStep() (tutorial.Step, bool) {
	return g.tutorial.Current()
}

// TutorialNext avança o tutorial; depois do último passo a mesa é liberada.
func (g *Game) TutorialNext() error {
	if g.state != StateTutorial {
		return ErrNotInTutorial
	}
	if g.tutorial.Next() {
		g.state = StatePlaying
	}
	return nil
}

// TutorialSkip fecha o tutorial de qualquer passo.
func (g *Game) TutorialSkip() error {
	if g.state != StateTutorial {
		return ErrNotInTutorial
	}
	g.tutorial.Skip()
	g.state = StatePlaying
	return nil
}
