// Package main provides the entry point for the course generator server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "course_agent",
	Short: "Personalized course generation server",
	Long:  "course_agent generates complete personalized courses (syllabus, lesson content, quizzes, and analytics) from a topic and learner profile, streaming progress over SSE.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
