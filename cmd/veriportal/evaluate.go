package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"veriportal-engine/internal/analytics"
	"veriportal-engine/internal/common/logger"
	"veriportal-engine/internal/common/validation"
	"veriportal-engine/internal/engine"
	"veriportal-engine/internal/engine/demo"
	eb "veriportal-engine/internal/workers/compliance/evaluate-business"
	el "veriportal-engine/internal/workers/training/evaluate-learner"
	"veriportal-engine/pkg/registry"
)

type evaluateOptions struct {
	root       *rootOptions
	file       string
	tablesPath string
	record     bool
	simulate   bool
}

func newEvaluateCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a business or learner document",
	}

	cmd.AddCommand(newEvaluateBusinessCmd(root))
	cmd.AddCommand(newEvaluateLearnerCmd(root))

	return cmd
}

func (o *evaluateOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "Input JSON document, - for stdin [REQUIRED]")
	cmd.Flags().StringVar(&o.tablesPath, "tables", "", "Tables YAML merged over the built-in tables")
	cmd.Flags().BoolVar(&o.record, "record", false, "Also write the evaluation to the configured analytics sinks")
	cmd.Flags().BoolVar(&o.simulate, "simulate", false, "Add the demo processing delay before evaluating")
	_ = cmd.MarkFlagRequired("file")
}

func newEvaluateBusinessCmd(root *rootOptions) *cobra.Command {
	o := &evaluateOptions{root: root}

	cmd := &cobra.Command{
		Use:   "business",
		Short: "Score a business context and its evidence",
		Long:  "Reads a document shaped like the evaluate-business job variables: business, evidence, weights and an optional profile.",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := o.readInput(cmd.InOrStdin(), eb.TaskType)
			if err != nil {
				return err
			}

			var input eb.Input
			if err := json.Unmarshal(raw, &input); err != nil {
				return fmt.Errorf("decode input: %w", err)
			}

			sim, err := o.simulator()
			if err != nil {
				return err
			}

			var evalOpts []engine.EvaluateOption
			if len(input.Weights) > 0 {
				evalOpts = append(evalOpts, engine.WithWeights(input.Weights))
			}
			if input.Profile != nil {
				evalOpts = append(evalOpts, engine.WithProfile(*input.Profile))
			}

			eval, err := sim.EvaluateBusiness(cmd.Context(), input.Business, input.Evidence, evalOpts...)
			if err != nil {
				return err
			}

			if o.record {
				if err := o.recordEvaluation(cmd.Context(), analytics.SubjectBusiness, eval); err != nil {
					return err
				}
			}
			return writeJSON(cmd.OutOrStdout(), eval)
		},
	}

	o.bind(cmd)
	return cmd
}

func newEvaluateLearnerCmd(root *rootOptions) *cobra.Command {
	o := &evaluateOptions{root: root}

	cmd := &cobra.Command{
		Use:   "learner",
		Short: "Score a learner and build a training plan",
		Long:  "Reads a document shaped like the evaluate-learner job variables: learner, history, optional weights and profile.",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := o.readInput(cmd.InOrStdin(), el.TaskType)
			if err != nil {
				return err
			}

			var input el.Input
			if err := json.Unmarshal(raw, &input); err != nil {
				return fmt.Errorf("decode input: %w", err)
			}

			sim, err := o.simulator()
			if err != nil {
				return err
			}

			var evalOpts []engine.EvaluateOption
			if len(input.Weights) > 0 {
				evalOpts = append(evalOpts, engine.WithWeights(input.Weights))
			}
			if input.Profile != nil {
				evalOpts = append(evalOpts, engine.WithProfile(*input.Profile))
			}

			eval, err := sim.EvaluateLearner(cmd.Context(), input.Learner, input.History, evalOpts...)
			if err != nil {
				return err
			}

			if o.record {
				if err := o.recordEvaluation(cmd.Context(), analytics.SubjectLearner, eval); err != nil {
					return err
				}
			}
			return writeJSON(cmd.OutOrStdout(), eval)
		},
	}

	o.bind(cmd)
	return cmd
}

// readInput loads the document and checks it against the worker's registry schema.
func (o *evaluateOptions) readInput(stdin io.Reader, taskType string) ([]byte, error) {
	var (
		raw []byte
		err error
	)
	if o.file == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(o.file)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	reg, err := registry.Default()
	if err != nil {
		return nil, err
	}
	result, err := validation.ValidateJSON(raw, reg.InputSchema(taskType))
	if err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("invalid input: %v", result.GetErrorMessages())
	}
	return raw, nil
}

func (o *evaluateOptions) simulator() (*demo.Simulator, error) {
	var tables *engine.Tables
	if o.tablesPath != "" {
		t, err := engine.LoadTables(o.tablesPath)
		if err != nil {
			return nil, err
		}
		tables = t
	}

	eng, err := engine.New(tables, engine.WithLogger(logger.NewStructured(o.root.logLevel, "console")))
	if err != nil {
		return nil, err
	}

	var simOpts []demo.Option
	if !o.simulate {
		simOpts = append(simOpts, demo.WithDelayRange(0, 0))
	}
	return demo.NewSimulator(eng, simOpts...), nil
}

func (o *evaluateOptions) recordEvaluation(ctx context.Context, subjectType string, eval interface{}) error {
	sink, closeSinks, err := openSinks(ctx, o.root.configPath)
	if err != nil {
		return err
	}
	defer closeSinks()

	rec, err := analytics.RecordEvaluation(subjectType, eval, time.Now())
	if err != nil {
		return err
	}
	return sink.Record(ctx, rec)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
