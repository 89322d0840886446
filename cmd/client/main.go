// Comando mesa-client: terminal para jogar a Mesa Cirúrgica pelo WebSocket.
package main

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"mesacirurgica/internal/logging"
	"mesacirurgica/internal/network"
	"mesacirurgica/internal/services/cluster"
)

type options struct {
	addrs     string
	consul    string
	service   string
	evaluator string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:           "mesa-client",
		Short:         "Cliente de terminal da Mesa Cirúrgica",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.addrs, "addr", "localhost:8080", "endereços do servidor, separados por vírgula")
	f.StringVar(&opts.consul, "consul", "", "endereço do Consul; quando definido, descobre o servidor por lá")
	f.StringVar(&opts.service, "service", "mesa-cirurgica", "nome do serviço no Consul")
	f.StringVarP(&opts.evaluator, "evaluator", "e", "", "avaliador: otto ou rafael")
	return cmd
}

func candidates(opts options, log logging.Logger) ([]string, error) {
	if opts.consul == "" {
		return strings.Split(opts.addrs, ","), nil
	}
	addr, err := cluster.Discover(opts.service, opts.consul, cluster.DiscoveryOptions{Mode: cluster.ModeAnyHealthy}, log)
	if err != nil {
		return nil, err
	}
	return []string{addr}, nil
}

func wsURL(addr, evaluator string) string {
	u := url.URL{Scheme: "ws", Host: strings.TrimSpace(addr), Path: "/ws"}
	if evaluator != "" {
		u.RawQuery = url.Values{"e": {evaluator}}.Encode()
	}
	return u.String()
}

// dial tenta cada endereço até um responder.
func dial(addrs []string, evaluator string) (*websocket.Conn, error) {
	for _, addr := range addrs {
		target := wsURL(addr, evaluator)
		fmt.Printf("Conectando em %s...\n", target)
		conn, resp, err := websocket.DefaultDialer.Dial(target, nil)
		if err == nil {
			return conn, nil
		}
		fmt.Printf("AVISO: falha ao conectar em %s: %v\n", addr, err)
		if resp != nil {
			fmt.Printf("AVISO: status recebido: %s\n", resp.Status)
		}
	}
	return nil, fmt.Errorf("no server reachable in %v", addrs)
}

func run(opts options) error {
	log := logging.NewNop()
	if opts.consul != "" {
		l, err := logging.New(logging.Config{Level: "warn", Format: "console"})
		if err == nil {
			log = l
		}
	}

	addrs, err := candidates(opts, log)
	if err != nil {
		return err
	}
	conn, err := dial(addrs, opts.evaluator)
	if err != nil {
		return err
	}
	defer conn.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	t := newTerminal(os.Stdout)
	done := make(chan struct{})
	go readLoop(conn, t, done)

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		ask := func(prompt string) string {
			fmt.Print(prompt)
			if !scanner.Scan() {
				return ""
			}
			return strings.TrimSpace(scanner.Text())
		}
		for scanner.Scan() {
			msg, ok, err := buildCommand(t.State(), strings.TrimSpace(scanner.Text()), ask)
			if err != nil {
				fmt.Println(err)
			}
			if !ok {
				t.Prompt()
				continue
			}
			if err := conn.WriteJSON(msg); err != nil {
				fmt.Printf("Erro ao enviar mensagem: %v\n", err)
			}
		}
	}()

	select {
	case <-done:
		fmt.Println("Desconectado do servidor.")
	case <-interrupt:
		fmt.Println("Interrupção recebida, fechando conexão.")
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}
	return nil
}

func readLoop(conn *websocket.Conn, t *terminal, done chan struct{}) {
	defer close(done)
	for {
		var msg network.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				fmt.Printf("\nErro de leitura: %v\n", err)
			}
			return
		}
		t.Handle(msg)
	}
}
