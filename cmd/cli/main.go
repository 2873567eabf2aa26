package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kurihiro0119/gh-reinvite/internal/config"
	"github.com/kurihiro0119/gh-reinvite/internal/domain"
	apperrors "github.com/kurihiro0119/gh-reinvite/internal/errors"
	"github.com/kurihiro0119/gh-reinvite/internal/hosting"
	"github.com/kurihiro0119/gh-reinvite/internal/reinvite"
	"github.com/kurihiro0119/gh-reinvite/internal/storage"
	"github.com/kurihiro0119/gh-reinvite/internal/storage/postgres"
	"github.com/kurihiro0119/gh-reinvite/internal/storage/sqlite"
	"github.com/kurihiro0119/gh-reinvite/pkg/client"
)

const version = "0.2.0"

var (
	delaySeconds  int
	permission    string
	skipConfirm   bool
	historyLimit  int
	historyRemote bool
)

var rootCmd = &cobra.Command{
	Use:   "gh-reinvite [owner/repo] [username]",
	Short: "Remove and reinvite a GitHub repository collaborator",
	Long: `gh-reinvite automates refreshing a collaborator's invitation state.

It removes the collaborator (or cancels their pending invitation) from a
GitHub repository, waits a configurable delay, and reinvites them with the
specified permission level.`,
	Version:       version,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runReinvite,
}

var historyCmd = &cobra.Command{
	Use:           "history [owner/repo]",
	Short:         "Show past reinvite runs",
	Long:          `Display the recorded reinvite runs, optionally filtered to one repository.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runHistory,
}

func init() {
	rootCmd.Flags().IntVarP(&delaySeconds, "delay", "d", 5, "delay in seconds between remove and reinvite")
	rootCmd.Flags().StringVarP(&permission, "permission", "p", "push", "permission level for reinvite (pull, triage, push, maintain, admin)")
	rootCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "skip confirmation prompt")

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of runs to show")
	historyCmd.Flags().BoolVar(&historyRemote, "remote", false, "fetch history from the API server instead of the local store")

	rootCmd.AddCommand(historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func getStore(cfg *config.Config) (storage.RunStore, error) {
	switch cfg.StorageType {
	case "postgres":
		return postgres.NewPostgresStore(cfg.PostgresURL)
	default:
		return sqlite.NewSQLiteStore(cfg.SQLitePath)
	}
}

func runReinvite(cmd *cobra.Command, args []string) error {
	repoRef, err := domain.ParseRepoRef(args[0])
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	username := args[1]

	perm, err := domain.ParsePermission(permission)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	if delaySeconds < 0 {
		return apperrors.NewValidationError("delay must be non-negative")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.GitHubToken == "" {
		return apperrors.NewUnauthenticatedError("not authenticated with GitHub: set GITHUB_TOKEN")
	}
	if err := cfg.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	printConfig(out, repoRef, username, perm)

	svc := hosting.NewGitHubService(cfg.GitHubToken)
	login, err := svc.CheckAuth(ctx)
	if err != nil {
		return apperrors.NewUnauthenticatedError("not authenticated with GitHub: run with a valid GITHUB_TOKEN")
	}
	fmt.Fprintf(out, "✓ Authenticated as %s\n", login)

	store, err := getStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize run store: %w", err)
	}
	defer store.Close()

	executor := &reinvite.Executor{
		Service:  svc,
		Store:    store,
		Reporter: &reinvite.ConsoleReporter{Out: out},
		Confirm:  promptConfirm(cmd.InOrStdin(), out),
	}

	run, err := executor.Run(ctx, reinvite.Options{
		Repo:         repoRef,
		Username:     username,
		Permission:   perm,
		DelaySeconds: delaySeconds,
		SkipConfirm:  skipConfirm,
	})
	if err != nil {
		if apperrors.IsInterrupted(err) || ctx.Err() != nil {
			return apperrors.NewInterruptedError()
		}
		return err
	}

	if run.Outcome == domain.RunDeclined {
		return nil
	}

	fmt.Fprintf(out, "\n✓ Operation completed successfully!\n")
	fmt.Fprintf(out, "%s has been reinvited to %s with %s permissions.\n", username, repoRef, perm)
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	var owner, repo string
	if len(args) == 1 {
		repoRef, err := domain.ParseRepoRef(args[0])
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}
		owner, repo = repoRef.Owner, repoRef.Name
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var runs []*domain.Run
	if historyRemote {
		apiClient := client.NewClient(cfg.APIEndpoint)
		if owner != "" {
			runs, err = apiClient.ListRuns(owner, repo, historyLimit)
		} else {
			runs, err = apiClient.ListAllRuns(historyLimit)
		}
		if err != nil {
			return fmt.Errorf("failed to fetch runs: %w", err)
		}
	} else {
		store, err := getStore(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize run store: %w", err)
		}
		defer store.Close()

		runs, err = store.ListRuns(cmd.Context(), owner, repo, historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Started", "Repository", "User", "Prior State", "Permission", "Outcome"})
	for _, run := range runs {
		table.Append([]string{
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Owner + "/" + run.Repo,
			run.Username,
			string(run.PriorState),
			string(run.Permission),
			string(run.Outcome),
		})
	}
	table.Render()

	return nil
}

func printConfig(out io.Writer, repo domain.RepoRef, username string, perm domain.Permission) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Setting", "Value"})
	table.Append([]string{"Repository", repo.String()})
	table.Append([]string{"User", username})
	table.Append([]string{"Delay", fmt.Sprintf("%d seconds", delaySeconds)})
	table.Append([]string{"Permission", string(perm)})
	table.Render()
}

func promptConfirm(in io.Reader, out io.Writer) reinvite.ConfirmFunc {
	reader := bufio.NewReader(in)
	return func(prompt string) (bool, error) {
		fmt.Fprintf(out, "%s [y/N]: ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return false, err
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes", nil
	}
}
