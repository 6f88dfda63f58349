package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/loganmatson/playbook/internal/constants"
	"github.com/loganmatson/playbook/internal/keyring"
	"github.com/loganmatson/playbook/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storageOK := false

	// Check 1: storage reachable
	if err := checkStorageReachable(ctx); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
		storageOK = true
	}

	// Check 2: stored playbooks decode and validate (only if storage works)
	if storageOK {
		if err := checkPlaybookRecords(ctx); err != nil {
			fmt.Printf("❌ Playbook records: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Playbook records: OK\n")
		}
	} else {
		fmt.Printf("⊘ Playbook records: SKIPPED (storage not reachable)\n")
	}

	// Check 3: API key configured (warning only; generation needs it,
	// browsing doesn't)
	if err := checkAPIKey(); err != nil {
		fmt.Printf("⚠ API key: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ API key: OK\n")
	}

	// Check 4: keyring availability (warning only; env var still works)
	if keyring.IsAvailable() {
		fmt.Printf("✓ System keyring: OK\n")
	} else {
		fmt.Printf("⚠ System keyring: WARNING\n")
		fmt.Printf("   keyring unavailable - use %s instead\n", constants.APIKeyEnvVar)
	}

	// Check 5: clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *Context) error {
	if _, err := ctx.Store.ListAll(); err != nil {
		return fmt.Errorf("failed to list playbooks: %w", err)
	}
	return nil
}

func checkPlaybookRecords(ctx *Context) error {
	playbooks, err := ctx.Store.ListAll()
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(playbooks))
	for _, pb := range playbooks {
		if seen[pb.ID] {
			return fmt.Errorf("duplicate playbook ID found: %s", pb.ID)
		}
		seen[pb.ID] = true

		if res := validation.PracticeSet(pb.Practices); !res.OK() {
			return fmt.Errorf("playbook %s has malformed practices:\n%s", pb.ID, res.FormatReport())
		}
	}
	return nil
}

func checkAPIKey() error {
	if os.Getenv(constants.APIKeyEnvVar) != "" {
		return nil
	}
	if _, err := keyring.GetAPIKey(); err != nil {
		return fmt.Errorf("no API key found - set %s or run 'playbook key set'", constants.APIKeyEnvVar)
	}
	return nil
}

func checkClock() error {
	// Playbook ids are derived from wall-clock milliseconds, so a wildly
	// wrong clock produces colliding or misordered records.
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
