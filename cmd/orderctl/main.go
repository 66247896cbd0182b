package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"gorestaurant/internal/composer"
	"gorestaurant/internal/config"
	"gorestaurant/internal/foodapi"
	"gorestaurant/internal/logger"
	"gorestaurant/internal/models"
	"gorestaurant/internal/monitoring"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	apiURL     = flag.String("api", "", "Food API base URL (overrides configuration)")
	foodID     = flag.Uint("food", 0, "Id of the food to order")
	quantity   = flag.Int("quantity", 1, "Number of portions")
	favorite   = flag.Bool("favorite", false, "Toggle the food's favorite flag")
	submit     = flag.Bool("submit", false, "Submit the order")
	metricsOut = flag.String("metrics-file", "", "Write composer operation metrics to this file (prometheus text format)")
	extras     extraFlags
)

// options is one composer session described on the command line
type options struct {
	FoodID   uint
	Quantity int
	Extras   extraFlags
	Favorite bool
	Submit   bool
}

func main() {
	flag.Var(&extras, "extra", "Extra to add as id=qty (repeatable)")
	flag.Parse()

	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func execute() error {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
	}
	if *apiURL != "" {
		cfg.Client.BaseURL = *apiURL
	}

	formatter, err := composer.NewFormatter(cfg.Display.Locale, cfg.Display.CurrencySymbol)
	if err != nil {
		return err
	}

	operations := monitoring.NewOperationRecorder()
	client := foodapi.NewClient(foodapi.NewHTTPRequester(cfg.Client.BaseURL, cfg.Client.Timeout))
	c := composer.New(client,
		composer.WithFormatter(formatter),
		composer.WithRecorder(operations),
		composer.WithLogger(logger.NewWithWriter("orderctl", cfg.LogLevel, os.Stderr)),
	)
	defer c.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := run(ctx, c, formatter, options{
		FoodID:   *foodID,
		Quantity: *quantity,
		Extras:   extras,
		Favorite: *favorite,
		Submit:   *submit,
	}, os.Stdout)

	// Failed sessions are exported too
	if *metricsOut != "" {
		if err := operations.WriteTextfile(*metricsOut); err != nil && runErr == nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return runErr
}

// run loads the food, applies the selections and optionally toggles the favorite and submits
func run(ctx context.Context, c *composer.Composer, formatter *composer.Formatter, opts options, out io.Writer) error {
	if opts.FoodID == 0 {
		return errors.New("-food is required")
	}
	if opts.Quantity < 1 {
		return fmt.Errorf("invalid quantity %d", opts.Quantity)
	}

	if err := c.Load(ctx, opts.FoodID); err != nil {
		return explain(err)
	}

	for i := 1; i < opts.Quantity; i++ {
		c.IncrementFood()
	}
	for _, sel := range opts.Extras {
		for i := 0; i < sel.Quantity; i++ {
			if !c.IncrementExtra(sel.ID) {
				return fmt.Errorf("food %d has no extra %d", opts.FoodID, sel.ID)
			}
		}
	}

	if opts.Favorite {
		if _, err := c.ToggleFavorite(ctx); err != nil {
			return explain(err)
		}
	}

	printDraft(out, c.Draft(), formatter)
	fmt.Fprintf(out, "Total: %s\n", c.FormattedTotal())

	if !opts.Submit {
		return nil
	}

	order, err := c.FinishOrder(ctx)
	if err != nil {
		return explain(err)
	}
	fmt.Fprintf(out, "Order #%d placed\n", order.ID)
	return nil
}

func printDraft(out io.Writer, draft models.OrderDraft, formatter *composer.Formatter) {
	star := ""
	if draft.IsFavorite {
		star = " ★"
	}

	fmt.Fprintf(out, "%s%s\n", draft.Food.Name, star)
	if draft.Food.Description != "" {
		fmt.Fprintf(out, "  %s\n", draft.Food.Description)
	}
	fmt.Fprintf(out, "Price: %s x %d\n", formatter.Format(draft.Food.Price), draft.FoodQuantity)

	for _, extra := range draft.Extras {
		fmt.Fprintf(out, "  [%d] %-20s %s x %d\n", extra.ID, extra.Name, formatter.Format(extra.Value), extra.Quantity)
	}
}

// explain turns composer errors into the message shown to the user
func explain(err error) error {
	var (
		loadErr     *composer.LoadError
		favoriteErr *composer.FavoriteSyncError
		submitErr   *composer.SubmitError
	)

	switch {
	case errors.As(err, &loadErr):
		return fmt.Errorf("could not load food %d: %w", loadErr.FoodID, loadErr.Err)
	case errors.As(err, &favoriteErr):
		return fmt.Errorf("could not update favorites for food %d: %w", favoriteErr.FoodID, favoriteErr.Err)
	case errors.As(err, &submitErr):
		return fmt.Errorf("could not place order for food %d: %w", submitErr.FoodID, submitErr.Err)
	}
	return err
}
