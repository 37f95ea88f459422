package main

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/intentbot/intentbot-go/internal/classifier"
	"github.com/intentbot/intentbot-go/internal/config"
	"github.com/intentbot/intentbot-go/internal/corpus"
	"github.com/intentbot/intentbot-go/internal/model"
	"github.com/intentbot/intentbot-go/internal/responder"
	"github.com/intentbot/intentbot-go/internal/service"
	"github.com/intentbot/intentbot-go/internal/stats"
	"github.com/intentbot/intentbot-go/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	corpusPath string
	floor      float64
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "intentctl",
		Short:         "Inspect and exercise the intent model from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.corpusPath, "corpus", config.DefaultCorpusPath, "training corpus file (utterance,category per line)")
	root.PersistentFlags().Float64Var(&opts.floor, "floor", config.DefaultConfidenceFloor, "confidence floor below which a prediction is unknown")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(
		newClassifyCmd(opts),
		newRespondCmd(opts),
		newCorpusCmd(opts),
		newEvalCmd(opts),
		newChatCmd(opts),
	)
	return root
}

// buildAssistant 训练一个只在本进程内使用的流水线
func (o *options) buildAssistant() (*service.AssistantService, *zap.Logger, error) {
	log, err := logger.NewLogger(o.logLevel)
	if err != nil {
		return nil, nil, err
	}
	assistant := service.NewAssistantService(
		classifier.NewClassifier(o.floor, log),
		responder.NewDispatcher(log),
		corpus.NewLoader(log),
		stats.NewMemoryRecorder(),
		o.corpusPath,
		log,
	)
	if err := assistant.Init(); err != nil {
		return nil, nil, err
	}
	return assistant, log, nil
}

func newClassifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <text...>",
		Short: "Print the predicted category and confidence",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assistant, log, err := opts.buildAssistant()
			if err != nil {
				return err
			}
			defer log.Sync()

			p := assistant.Classify(strings.Join(args, " "))
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.4f\n", p.Category, p.Confidence)
			return nil
		},
	}
}

func newRespondCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "respond <text...>",
		Short: "Print the assistant's reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assistant, log, err := opts.buildAssistant()
			if err != nil {
				return err
			}
			defer log.Sync()

			fmt.Fprintln(cmd.OutOrStdout(), assistant.Respond(strings.Join(args, " ")))
			return nil
		},
	}
}

func newCorpusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "corpus",
		Short: "Show which corpus was loaded and how many examples each category has",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logger.NewLogger(opts.logLevel)
			if err != nil {
				return err
			}
			defer log.Sync()

			examples, isDefault := corpus.NewLoader(log).Load(opts.corpusPath)
			out := cmd.OutOrStdout()
			source := opts.corpusPath
			if isDefault {
				source = "built-in default"
			}
			fmt.Fprintf(out, "source:   %s\nexamples: %d\n", source, len(examples))
			for _, c := range corpus.Stats(examples) {
				fmt.Fprintf(out, "  %-14s %d\n", c.Category, c.Count)
			}
			return nil
		},
	}
}

type evalRow struct {
	category model.Category
	total    int
	correct  int
}

func newEvalCmd(opts *options) *cobra.Command {
	var showMisses bool
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Classify every training utterance and report per-category accuracy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			assistant, log, err := opts.buildAssistant()
			if err != nil {
				return err
			}
			defer log.Sync()

			examples, _ := corpus.NewLoader(log).Load(opts.corpusPath)
			return writeEval(cmd.OutOrStdout(), assistant, examples, showMisses)
		},
	}
	cmd.Flags().BoolVar(&showMisses, "misses", false, "list every misclassified utterance")
	return cmd
}

func writeEval(out io.Writer, assistant *service.AssistantService, examples []model.Example, showMisses bool) error {
	rows := make(map[model.Category]*evalRow)
	var misses []string
	correct := 0

	for _, ex := range examples {
		row, ok := rows[ex.Category]
		if !ok {
			row = &evalRow{category: ex.Category}
			rows[ex.Category] = row
		}
		row.total++

		p := assistant.Classify(ex.Utterance)
		if p.Category == ex.Category {
			row.correct++
			correct++
			continue
		}
		misses = append(misses, fmt.Sprintf("  %q: want %s, got %s (%.2f)", ex.Utterance, ex.Category, p.Category, p.Confidence))
	}

	ordered := make([]*evalRow, 0, len(rows))
	for _, r := range rows {
		ordered = append(ordered, r)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].category < ordered[j].category })

	for _, r := range ordered {
		fmt.Fprintf(out, "%-14s %3d/%-3d %6.1f%%\n", r.category, r.correct, r.total, percent(r.correct, r.total))
	}
	fmt.Fprintf(out, "%-14s %3d/%-3d %6.1f%%\n", "total", correct, len(examples), percent(correct, len(examples)))

	if showMisses && len(misses) > 0 {
		fmt.Fprintln(out, "misses:")
		for _, m := range misses {
			fmt.Fprintln(out, m)
		}
	}
	return nil
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}

func newChatCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive console session; type 'exit' or send EOF to leave",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			assistant, log, err := opts.buildAssistant()
			if err != nil {
				return err
			}
			defer log.Sync()
			return chatLoop(cmd.InOrStdin(), cmd.OutOrStdout(), assistant)
		},
	}
}

// chatLoop 逐行读取输入并回复；告别类消息回复后结束会话
func chatLoop(in io.Reader, out io.Writer, assistant *service.AssistantService) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			fmt.Fprint(out, "> ")
			continue
		}

		p := assistant.Classify(text)
		fmt.Fprintln(out, assistant.Respond(text))
		if p.Category == model.CategoryFarewell || text == "exit" || text == "quit" {
			return nil
		}
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}
