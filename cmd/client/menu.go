package main

import (
	"errors"
	"strconv"

	"mesacirurgica/internal/network"
)

// Estados como o servidor os envia.
const (
	StateTutorial  = "TUTORIAL"
	StatePlaying   = "PLAYING"
	StateCompleted = "COMPLETED"
)

var errInvalidOption = errors.New("opção inválida")

func command(msgType string, payload any) (network.Message, bool, error) {
	msg, err := network.NewMessage(msgType, payload)
	if err != nil {
		return network.Message{}, false, err
	}
	return msg, true, nil
}

// buildCommand traduz a escolha do menu numa mensagem. ok=false quando nada deve ser enviado.
func buildCommand(state, choice string, ask func(prompt string) string) (network.Message, bool, error) {
	switch choice {
	case "8":
		return command("VIEW_BOARD", nil)
	case "9":
		return command("RESET", nil)
	}

	switch state {
	case StateTutorial:
		switch choice {
		case "1":
			return command("TUTORIAL_NEXT", nil)
		case "2":
			return command("TUTORIAL_SKIP", nil)
		}
	case StatePlaying, StateCompleted:
		switch choice {
		case "1":
			id := ask("Id do instrumento (ex: lamina-10): ")
			zone := ask("Zona (z1..z6): ")
			payload := map[string]any{"instrumentId": id, "zoneId": zone}
			if raw := ask("Posição na zona (enter para o fim): "); raw != "" {
				idx, err := strconv.Atoi(raw)
				if err != nil {
					return network.Message{}, false, errors.New("entrada inválida. Por favor, digite um número")
				}
				payload["index"] = idx
			}
			return command("PLACE", payload)
		case "2":
			id := ask("Id do instrumento a devolver à lista: ")
			return command("PLACE", map[string]any{"instrumentId": id, "zoneId": ""})
		case "3":
			return command("CHECK", nil)
		case "4":
			if state == StateCompleted {
				return command("VIEW_REPORT", nil)
			}
		}
	}
	return network.Message{}, false, errInvalidOption
}

func menu(state string) string {
	switch state {
	case StateTutorial:
		return `
--- Mesa Cirúrgica (Tutorial) ---
1. Próximo passo
2. Pular tutorial
8. Ver mesa
9. Recomeçar
---------------------------------

(Tutorial) Digite uma opção: `
	case StateCompleted:
		return `
--- Mesa Cirúrgica (Concluída) ---
1. Colocar/mover instrumento
2. Devolver instrumento à lista
3. Checar novamente
4. Ver relatório
8. Ver mesa
9. Recomeçar
----------------------------------

(Concluída) Digite uma opção: `
	default:
		return `
--- Mesa Cirúrgica (Em Jogo) ---
1. Colocar/mover instrumento
2. Devolver instrumento à lista
3. Checar
8. Ver mesa
9. Recomeçar
--------------------------------

(Em Jogo) Digite uma opção: `
	}
}
