package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/ecotrack/backend/internal/database"
	"github.com/ecotrack/backend/internal/seed"
	"github.com/ecotrack/backend/internal/store"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the cleanup feed aggregates",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := apiRequest(http.MethodGet, "/feed/stats", nil)
			if err != nil {
				return err
			}

			var resp struct {
				Stats struct {
					AreasCleaned     int64 `json:"areasCleaned"`
					PhotosShared     int64 `json:"photosShared"`
					VerificationRate int   `json:"verificationRate"`
					PointsEarned     int64 `json:"pointsEarned"`
				} `json:"stats"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				return err
			}

			fmt.Printf("Areas cleaned:     %d\n", resp.Stats.AreasCleaned)
			fmt.Printf("Photos shared:     %d\n", resp.Stats.PhotosShared)
			fmt.Printf("Verification rate: %d%%\n", resp.Stats.VerificationRate)
			fmt.Printf("Points earned:     %d\n", resp.Stats.PointsEarned)
			return nil
		},
	}
}

func reportStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report-status <report-id> <pending|in_progress|completed>",
		Short: "Move a waste report through its status lifecycle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := json.Marshal(map[string]string{"status": args[1]})
			if err != nil {
				return err
			}

			body, err := apiRequest(http.MethodPut, "/reports/"+args[0]+"/status", payload)
			if err != nil {
				return err
			}

			var resp struct {
				Report struct {
					ID     string `json:"id"`
					Status string `json:"status"`
				} `json:"report"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				return err
			}
			fmt.Printf("Report %s is now %s\n", resp.Report.ID, resp.Report.Status)
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	counts := seed.DefaultCounts
	var randomSeed uint64

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the configured database with demo content",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !database.Configured() {
				return fmt.Errorf("no database configured; set DATABASE_URL or DB_DRIVER")
			}
			if err := database.Initialize(); err != nil {
				return err
			}
			defer database.Close() //nolint:errcheck
			if err := database.Migrate(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			seeder := seed.New(store.NewGorm(database.DB), randomSeed)
			if err := seeder.Run(ctx, counts); err != nil {
				return err
			}

			fmt.Printf("Seeded %d users (password %q), %d reports and %d cleanups each\n",
				counts.Users, seed.Password, counts.ReportsPerUser, counts.CleanupsPerUser)
			return nil
		},
	}

	cmd.Flags().IntVar(&counts.Users, "users", counts.Users, "number of users to create")
	cmd.Flags().IntVar(&counts.ReportsPerUser, "reports", counts.ReportsPerUser, "waste reports per user")
	cmd.Flags().IntVar(&counts.CleanupsPerUser, "cleanups", counts.CleanupsPerUser, "cleanup activities per user")
	cmd.Flags().IntVar(&counts.CommentsPerCleanup, "comments", counts.CommentsPerCleanup, "comments per cleanup")
	cmd.Flags().Uint64Var(&randomSeed, "seed", 0, "random seed (0 = nondeterministic)")

	return cmd
}

// apiRequest calls the running API and returns the response body, failing
// on any non-2xx status
func apiRequest(method, path string, payload []byte) ([]byte, error) {
	req, err := http.NewRequest(method, apiBase+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, bytes.TrimSpace(body))
	}
	return body, nil
}
