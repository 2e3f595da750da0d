// bannersim exercises the consent protocol against a running backend the way
// the embedded banner script would: load the config, decide, then load again
// to demonstrate replay. Useful for smoke-testing a deployment without a
// browser.
//
//	bannersim -url http://localhost:3001 -project 1 -action acceptSelection -categories 1,3
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"consent-backend/bannerclient"
	"consent-backend/consent"
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:3001", "backend base URL")
		projectID  = flag.Uint("project", 1, "project id")
		action     = flag.String("action", "acceptAll", "decision action: acceptAll, acceptSelection, necessaryOnly, rejectAll")
		categories = flag.String("categories", "", "comma-separated category ids for acceptSelection")
		withdraw   = flag.Bool("withdraw", false, "withdraw consent after the decision")
	)
	flag.Parse()

	checked, err := parseCategoryIDs(*categories)
	if err != nil {
		log.Fatalf("invalid -categories: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store := bannerclient.NewMemoryStore()
	activate := func(services []consent.Service) {
		for _, svc := range services {
			fmt.Printf("  activate service %d (%s)\n", svc.ID, svc.Name)
		}
	}

	// First page load: no stored consent, the session must prompt.
	session := bannerclient.NewSession(*baseURL, *projectID, store, activate)
	if err := session.Load(ctx); err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	fmt.Printf("first load: state=%s config-version=%s\n", session.State(), session.Config().Version())

	details, err := session.HandleAction(ctx, *action, checked)
	if err != nil {
		log.Fatalf("consent submission failed: %v", err)
	}
	fmt.Printf("decision %q recorded: categories=%v accept_all=%v expires=%s\n",
		*action, details.AcceptedCategories, details.IsAcceptAll, details.ExpiresAt.Format(time.RFC3339))

	// Second page load with the same store: a fresh session must replay the
	// stored consent without prompting or re-submitting.
	replay := bannerclient.NewSession(*baseURL, *projectID, store, activate)
	if err := replay.Load(ctx); err != nil {
		log.Fatalf("replay load failed: %v", err)
	}
	fmt.Printf("second load: state=%s\n", replay.State())
	if replay.State() != bannerclient.StateReplaying {
		fmt.Println("WARNING: stored consent was not replayed (config changed between loads?)")
		os.Exit(1)
	}

	if *withdraw {
		details, err := replay.Withdraw(ctx)
		if err != nil {
			log.Fatalf("withdraw failed: %v", err)
		}
		fmt.Printf("withdrawn: remaining categories=%v\n", details.AcceptedCategories)
	}
}

func parseCategoryIDs(raw string) ([]uint, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%q is not a category id", part)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
