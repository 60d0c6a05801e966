package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/course-generator/internal/config"
	"github.com/jonathan/course-generator/internal/db"
	"github.com/jonathan/course-generator/internal/llm"
	"github.com/jonathan/course-generator/internal/pipeline"
	"github.com/jonathan/course-generator/internal/types"
)

var (
	genTopic      string
	genUserID     string
	genLevel      string
	genPreferred  string
	genDisliked   string
	genGoal       string
	genStyle      string
	genCommitment string
	genVerbose    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a course from the command line",
	Long:  `Run one full course generation (syllabus, lessons, quizzes, analytics), persist it, and print the course id.`,
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genTopic, "topic", "", "Course topic (required)")
	generateCmd.Flags().StringVar(&genUserID, "user", "", "User ID to own the course (required)")
	generateCmd.Flags().StringVar(&genLevel, "level", "", "Learner level, e.g. beginner")
	generateCmd.Flags().StringVar(&genPreferred, "prefer", "", "Topics to emphasize")
	generateCmd.Flags().StringVar(&genDisliked, "avoid", "", "Topics to avoid")
	generateCmd.Flags().StringVar(&genGoal, "goal", "", "Learning goal")
	generateCmd.Flags().StringVar(&genStyle, "style", "", "Preferred learning style")
	generateCmd.Flags().StringVar(&genCommitment, "hours", "", "Total time commitment in hours")
	generateCmd.Flags().BoolVar(&genVerbose, "verbose", false, "Print stage summaries as they complete")
	_ = generateCmd.MarkFlagRequired("topic")
	_ = generateCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	apiKey, err := llm.PickKey(cfg.GeminiAPIKeys, llm.DefaultRand())
	if err != nil {
		return err
	}

	client, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), apiKey)
	if err != nil {
		return err
	}
	defer client.Close() //nolint:errcheck

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	req := types.GenerationRequest{
		Topic:  genTopic,
		UserID: genUserID,
		Personalization: &types.Personalization{
			Level:           genLevel,
			PreferredTopics: genPreferred,
			DislikedTopics:  genDisliked,
			Goal:            genGoal,
			LearningStyle:   genStyle,
			TimeCommitment:  genCommitment,
		},
	}

	courseID, err := pipeline.Run(ctx, pipeline.RunOptions{
		Request:     req,
		Backend:     &cliBackend{client: client},
		Store:       database,
		MaxAttempts: cfg.MaxGenerationAttempts,
		BaseDelay:   cfg.RetryBaseDelay,
		OnNotice: func(message string) {
			fmt.Println(message)
		},
		Verbose: genVerbose,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Course created: %s\n", courseID)
	return nil
}

type cliBackend struct {
	client llm.Client
}

func (b *cliBackend) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return b.client.GenerateJSON(ctx, prompt, tier)
}
