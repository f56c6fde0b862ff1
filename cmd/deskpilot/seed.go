package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/deskpilot/internal/model"
	"github.com/verte-zerg/deskpilot/internal/routine"
)

var (
	seedCompanyName string
	seedTimezone    string
	seedEmployees   int
	seedDays        int
	seedRandom      int64
)

var seedExercises = []model.Exercise{
	{Name: "Neck Stretches", Difficulty: model.DifficultyBasic, Description: "Slow tilts and turns, 2 min"},
	{Name: "Wrist Relief", Difficulty: model.DifficultyBasic, Description: "Flexor and extensor stretch, 1 min"},
	{Name: "Eye Relaxation", Difficulty: model.DifficultyBasic, Description: "20-20-20 focus shifts, 2 min"},
	{Name: "Seated Spine Twist", Difficulty: model.DifficultyMedium, Description: "Chair-supported rotation, 3 min"},
	{Name: "Shoulder Rolls", Difficulty: model.DifficultyBasic, Description: "Forward and back circles, 1 min"},
	{Name: "Deep Breathing", Difficulty: model.DifficultyComplex, Description: "Box breathing, 2 min"},
}

var seedNames = []string{
	"Ada", "Ben", "Chloe", "Dev", "Elif", "Farid", "Grace", "Hiro", "Ines", "Jonas",
	"Kemi", "Luca", "Maya", "Nils", "Olga", "Priya", "Quinn", "Rafa", "Sana", "Tom",
}

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a demo company with employees and sessions",
		Args:  cobra.NoArgs,
		RunE:  runSeedCmd,
	}
	cmd.Flags().StringVar(&seedCompanyName, "company-name", "Demo Co", "company name")
	cmd.Flags().StringVar(&seedTimezone, "company-timezone", "", "IANA timezone of the company")
	cmd.Flags().IntVar(&seedEmployees, "employees", 10, "number of employees")
	cmd.Flags().IntVar(&seedDays, "days", 30, "days of session history")
	cmd.Flags().Int64Var(&seedRandom, "seed", 0, "random seed (default: time based)")
	return cmd
}

func runSeedCmd(cmd *cobra.Command, _ []string) error {
	if strings.TrimSpace(seedCompanyName) == "" {
		return fmt.Errorf("--company-name must not be empty")
	}
	if seedEmployees < 0 {
		return fmt.Errorf("--employees must be >= 0")
	}
	if seedDays < 0 {
		return fmt.Errorf("--days must be >= 0")
	}
	loc := time.Local
	if seedTimezone != "" {
		parsed, err := time.LoadLocation(seedTimezone)
		if err != nil {
			return fmt.Errorf("invalid --company-timezone value: %w", err)
		}
		loc = parsed
	}
	if seedRandom == 0 {
		seedRandom = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seedRandom))
	picker := routine.NewSeeded(seedRandom)

	st, closeFn, err := openStore()
	if err != nil {
		return err
	}
	defer closeFn()
	ctx := commandContext(cmd)

	exercises, err := st.ListExercises(ctx)
	if err != nil {
		return err
	}
	if len(exercises) == 0 {
		for _, ex := range seedExercises {
			saved, err := st.InsertExercise(ctx, ex)
			if err != nil {
				return err
			}
			exercises = append(exercises, saved)
		}
	}

	company, err := st.InsertCompany(ctx, model.Company{
		Name:            seedCompanyName,
		Timezone:        seedTimezone,
		ReminderEnabled: true,
		ReminderTimes:   []string{"10:00", "15:00"},
	})
	if err != nil {
		return err
	}

	now := time.Now()
	today := model.DateOf(now, loc)
	// The id suffix keeps emails unique when the same name is seeded twice.
	domain := fmt.Sprintf("%s-%s.example", strings.ToLower(strings.Join(strings.Fields(seedCompanyName), "")), company.ID[:8])
	joined := now.AddDate(0, 0, -seedDays-1)
	logs := 0
	for i := 0; i < seedEmployees; i++ {
		name := seedNames[i%len(seedNames)]
		if i >= len(seedNames) {
			name = fmt.Sprintf("%s %d", name, i/len(seedNames)+1)
		}
		status := model.StatusActive
		switch i % 7 {
		case 5:
			status = model.StatusInvited
		case 6:
			status = model.StatusPending
		}
		user, err := st.InsertUser(ctx, model.User{
			Name:      name,
			Email:     fmt.Sprintf("%s.%d@%s", strings.ToLower(strings.Fields(name)[0]), i+1, domain),
			CompanyID: company.ID,
			Status:    status,
			CreatedAt: joined.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			return err
		}
		if status != model.StatusActive {
			continue
		}
		// Each employee gets a habit strength so leaderboards spread out.
		habit := 0.3 + 0.6*rnd.Float64()
		for off := seedDays - 1; off >= 0; off-- {
			if rnd.Float64() > habit {
				continue
			}
			day := today.AddDays(-off).Start(loc)
			sessions := 1 + rnd.Intn(3)
			for s := 0; s < sessions; s++ {
				at := day.Add(9*time.Hour + time.Duration(rnd.Intn(8*60))*time.Minute)
				if at.After(now) {
					continue
				}
				ex := picker.Pick(exercises, 1)[0]
				if _, err := st.InsertLog(ctx, model.SessionLog{
					UserID:          user.ID,
					CompanyID:       company.ID,
					ExerciseID:      ex.ID,
					Timestamp:       at,
					Source:          "seed",
					DurationSeconds: 60 + rnd.Intn(120),
				}); err != nil {
					return err
				}
				logs++
			}
		}
	}
	logger.Debug("seeded company", "company", company.ID, "employees", seedEmployees, "logs", logs)
	logErrf("Seeded %s with %d employees and %d sessions. Use: --company %s\n", company.Name, seedEmployees, logs, company.ID)
	_, err = fmt.Fprintln(cmd.OutOrStdout(), company.ID)
	return err
}
