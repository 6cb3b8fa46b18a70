// Package main 命令行生成黑客松创意，复用 HTTP 服务的同一条生成流程
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"hackathon-idea-api/internal/config"
	"hackathon-idea-api/internal/domain/entity"
	einoobs "hackathon-idea-api/internal/observability/eino"
	"hackathon-idea-api/internal/wire"
	"hackathon-idea-api/pkg/logger"
)

// Version 版本信息，构建时注入
var Version = "dev"

type ideaGenerator interface {
	Generate(ctx context.Context, req *entity.IdeaRequest) ([]json.RawMessage, error)
}

// pipelineBuilder 构造生成流程，返回的 cleanup 在命令结束时调用
type pipelineBuilder func(ctx context.Context) (ideaGenerator, func(), error)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout, defaultPipeline).Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultPipeline(ctx context.Context) (ideaGenerator, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 标准输出只留给结果文档
	logger.InitWithWriter(os.Stderr, cfg.Observability.Logging.Level, "text")
	einoobs.Init()

	svc, cleanup, err := wire.InitializePipeline(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return svc, cleanup, nil
}

func newApp(out io.Writer, build pipelineBuilder) *cli.Command {
	return &cli.Command{
		Name:    "idea-cli",
		Usage:   "Generate hackathon project ideas from the command line",
		Version: Version,
		Commands: []*cli.Command{
			generateCmd(out, build),
		},
	}
}

func generateCmd(out io.Writer, build pipelineBuilder) *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate at least 10 project ideas and print them as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "context",
				Usage:    "Theme or problem space of the hackathon (e.g., climate)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "time-limit",
				Value: "24h",
				Usage: "Hackathon duration (supported values: 24h, 48h, 72h, 1week)",
			},
			&cli.StringFlag{
				Name:     "hackathon-level",
				Usage:    "Participant experience level (e.g., beginner)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "difficulty-level",
				Usage:    "Desired project difficulty (e.g., easy)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "tech-stack",
				Usage:    "Preferred technologies (e.g., Python)",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "ai-ml",
				Usage: "Require AI/ML components in the ideas",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			gen, cleanup, err := build(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			ideas, err := gen.Generate(ctx, &entity.IdeaRequest{
				Context:         cmd.String("context"),
				TimeLimit:       cmd.String("time-limit"),
				HackathonLevel:  cmd.String("hackathon-level"),
				DifficultyLevel: cmd.String("difficulty-level"),
				TechStack:       cmd.String("tech-stack"),
				AIMLNeeded:      cmd.Bool("ai-ml"),
			})
			if err != nil {
				return fmt.Errorf("failed to generate ideas: %w", err)
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string][]json.RawMessage{"ideas": ideas})
		},
	}
}
