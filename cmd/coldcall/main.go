package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/devendraBainda/hinglish-cold-calling-agent/internal/agent"
	"github.com/devendraBainda/hinglish-cold-calling-agent/internal/audio"
	"github.com/devendraBainda/hinglish-cold-calling-agent/internal/calendar"
	"github.com/devendraBainda/hinglish-cold-calling-agent/internal/config"
	"github.com/devendraBainda/hinglish-cold-calling-agent/internal/crm"
	"github.com/devendraBainda/hinglish-cold-calling-agent/internal/llm"
	"github.com/devendraBainda/hinglish-cold-calling-agent/internal/record"
	"github.com/devendraBainda/hinglish-cold-calling-agent/internal/scenario"
	"github.com/devendraBainda/hinglish-cold-calling-agent/internal/stt"
	"github.com/devendraBainda/hinglish-cold-calling-agent/internal/tts"
	"github.com/devendraBainda/hinglish-cold-calling-agent/internal/ui"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	var (
		scenarioFlag string
		contactFlag  string
		auto         bool
	)
	root := &cobra.Command{
		Use:          "coldcall",
		Short:        "Voice-driven Hinglish cold-calling agent",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, scenarioFlag, contactFlag, auto)
		},
	}
	root.Flags().StringVar(&scenarioFlag, "scenario", "", "scenario to run (demo_scheduling, candidate_interviewing, payment_followup)")
	root.Flags().StringVar(&contactFlag, "contact", "", "contact email used for booking and the interaction log")
	root.Flags().BoolVar(&auto, "auto", false, "end each recording on silence instead of ENTER")
	root.AddCommand(newDevicesCmd())
	return root
}

func newDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List audio input devices",
		RunE: func(cmd *cobra.Command, _ []string) error {
			devices, err := audio.ListInputDevices()
			if err != nil {
				return err
			}
			for i, d := range devices {
				fmt.Fprintf(cmd.OutOrStdout(), "%d: %s (%d ch, %.0f Hz)\n", i, d.Name, d.MaxInputChannels, d.DefaultSampleRate)
			}
			return nil
		},
	}
}

func run(cmd *cobra.Command, scenarioFlag, contactFlag string, auto bool) error {
	cfg := config.Load()

	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	sc := scenario.Scenario(scenarioFlag)
	if scenarioFlag == "" {
		var err error
		sc, err = promptScenario(in, out)
		if err != nil {
			return err
		}
	} else if !scenario.Valid(sc) {
		return fmt.Errorf("unknown scenario %q", scenarioFlag)
	}

	contact := contactFlag
	if contact == "" {
		var err error
		contact, err = promptContact(in, out, sc)
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sttClient := stt.NewGoogleClient(cfg.GoogleAPIKey)
	newSession := func() agent.Recorder {
		return record.NewSession(audio.NewMicrophone(), sttClient, cfg.LanguageCode, record.Options{AutoStop: auto})
	}
	generator := agent.NewGenerator(llm.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel))
	router := agent.NewRouter(
		calendar.NewGoogleClient(cfg.CalendarToken, cfg.CalendarID),
		crm.NewFileLog(cfg.CRMPath),
	)

	loop := agent.NewLoop(
		ui.NewConsole(in, out, auto),
		newSession,
		generator,
		router,
		tts.NewGoogleClient(cfg.GoogleAPIKey, cfg.LanguageCode),
		audio.NewFilePlayer(),
	)
	loop.MaxWait = cfg.MaxResultWait
	if auto {
		// A silence-ended capture can run up to the no-audio ceiling before
		// the recognizer is even called.
		loop.MaxWait += 12 * time.Second
	}

	err := loop.Run(ctx, sc, contact)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return err
	}
	fmt.Fprintln(out, "\nCall ended. Dhanyavaad!")
	return nil
}

func promptScenario(in *bufio.Reader, out io.Writer) (scenario.Scenario, error) {
	all := scenario.All()
	fmt.Fprintln(out, "Select a scenario:")
	for i, sc := range all {
		fmt.Fprintf(out, "  %d. %s\n", i+1, sc)
	}
	for {
		fmt.Fprintf(out, "Enter choice [1-%d]: ", len(all))
		line, err := in.ReadString('\n')
		if err != nil {
			return "", err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && n >= 1 && n <= len(all) {
			return all[n-1], nil
		}
		fmt.Fprintln(out, "Invalid choice.")
	}
}

func promptContact(in *bufio.Reader, out io.Writer, sc scenario.Scenario) (string, error) {
	def := scenario.Lookup(sc).DefaultContact
	for {
		if def != "" {
			fmt.Fprintf(out, "Contact email [%s]: ", def)
		} else {
			fmt.Fprint(out, "Contact email: ")
		}
		line, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		contact := strings.TrimSpace(line)
		if contact == "" {
			contact = def
		}
		if contact != "" {
			return contact, nil
		}
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
	}
}
