package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/leadgenie/leadgenie/internal/chatbot"
	"github.com/leadgenie/leadgenie/internal/config"
	"github.com/leadgenie/leadgenie/internal/domain"
	"github.com/leadgenie/leadgenie/internal/embed"
	"github.com/leadgenie/leadgenie/internal/llm"
	"github.com/leadgenie/leadgenie/internal/scraper"
)

var (
	green  = color.New(color.FgGreen, color.Bold)
	red    = color.New(color.FgRed, color.Bold)
	yellow = color.New(color.FgYellow, color.Bold)
	cyan   = color.New(color.FgCyan, color.Bold)
	bold   = color.New(color.Bold)
	dim    = color.New(color.Faint)
)

func main() {
	godotenv.Load()

	targetURL := flag.String("url", "", "Website URL to scrape")
	companyName := flag.String("name", "", "Company name (default: derived from URL)")
	ask := flag.String("ask", "", "Ask the built chatbot a single question")
	showEmbed := flag.Bool("embed", false, "Print the embeddable widget snippet")
	showContent := flag.Bool("content", false, "Print scraped page content")
	verbose := flag.Bool("verbose", false, "Verbose output")

	flag.Parse()

	if *targetURL == "" {
		red.Println("❌ -url is required")
		fmt.Println("   Usage: scrape -url https://example.com [-name \"Example Inc\"] [-ask \"question\"]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		red.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if *verbose {
		logger, _ = zap.NewDevelopment()
	} else {
		zcfg := zap.NewProductionConfig()
		zcfg.OutputPaths = []string{"/dev/null"}
		logger, _ = zcfg.Build()
	}
	defer logger.Sync()

	printBanner()

	name := *companyName
	if name == "" {
		name = deriveName(*targetURL)
	}

	fmt.Printf("🎯 Target:  %s\n", *targetURL)
	fmt.Printf("🏢 Company: %s\n", name)
	fmt.Println()

	ctx := context.Background()
	startTime := time.Now()

	//==========================================================================
	// STEP 1: SCRAPE
	//==========================================================================
	printStep(1, "Scraping", fmt.Sprintf("Fetching pages with %d workers...", cfg.Scraper.Workers))

	sc := scraper.New(cfg.Scraper, logger)
	llmClient := llm.New(cfg.OpenRouter, logger)
	chatbotID := domain.NewChatbotID(name, *targetURL)

	bot := chatbot.New(name, *targetURL, chatbotID, sc, llmClient, cfg.Chat, logger)

	bar := progressbar.NewOptions(len(sc.CandidateURLs(*targetURL)),
		progressbar.OptionSetDescription("   Scraping..."),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	err = bot.Initialize(ctx, func(done, total int, url string) {
		bar.Set(done)
	})
	bar.Finish()
	fmt.Println()

	if err != nil {
		red.Printf("   ❌ Scraping failed: %v\n", err)
		os.Exit(1)
	}

	pages := bot.Pages()
	contacts := bot.Contacts()

	if len(pages) == 0 {
		yellow.Println("   ⚠ No content could be extracted from the website")
	} else {
		green.Printf("   ✓ Scraped %d page(s)\n", len(pages))
		for _, p := range pages {
			dim.Printf("      • %s (%d chars)\n", p.URL, len(p.Content))
		}
	}

	//==========================================================================
	// STEP 2: CONTACTS
	//==========================================================================
	printStep(2, "Contact Extraction", "Looking for emails and phone numbers...")

	if contacts.IsEmpty() {
		yellow.Println("   ⚠ No contact information found")
	} else {
		if len(contacts.Emails) > 0 {
			green.Printf("   ✓ Emails: %s\n", strings.Join(contacts.Emails, ", "))
		}
		if len(contacts.Phones) > 0 {
			green.Printf("   ✓ Phones: %s\n", strings.Join(contacts.Phones, ", "))
		}
	}

	if *showContent {
		for _, p := range pages {
			fmt.Println()
			bold.Printf("── %s ──\n", p.URL)
			fmt.Println(p.Content)
		}
	}

	//==========================================================================
	// STEP 3: CHAT (optional)
	//==========================================================================
	if *ask != "" {
		printStep(3, "Chat", "Asking the assembled chatbot...")

		if !llmClient.Configured() {
			yellow.Println("   ⚠ OPENROUTER_API_KEY not set, only canned replies available")
		}

		answer, route := bot.Ask(ctx, *ask)
		cyan.Printf("   Q: %s\n", *ask)
		bold.Printf("   A: %s\n", answer)
		dim.Printf("      (answered via %s)\n", route)
	}

	//==========================================================================
	// EMBED SNIPPET (optional)
	//==========================================================================
	if *showEmbed {
		fmt.Println()
		bold.Println("━━━ Embed Snippet ━━━")
		fmt.Println(embed.WidgetCode(chatbotID, name))
	}

	fmt.Println()
	green.Printf("✓ Done in %.1fs (chatbot id: %s)\n", time.Since(startTime).Seconds(), chatbotID)
}

func printBanner() {
	cyan.Println(`
╔══════════════════════════════════════════════════╗
║   LeadGenie: Website Scraper & Chatbot Builder   ║
╚══════════════════════════════════════════════════╝`)
}

func printStep(num int, title, description string) {
	fmt.Println()
	bold.Printf("━━━ Step %d: %s ━━━\n", num, title)
	fmt.Printf("    %s\n", description)
}

// deriveName guesses a company name from the URL host.
func deriveName(rawURL string) string {
	host := rawURL
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimPrefix(host, "www.")
	if i := strings.IndexAny(host, "/:"); i >= 0 {
		host = host[:i]
	}
	if i := strings.Index(host, "."); i > 0 {
		host = host[:i]
	}
	if host == "" {
		return "Unknown Company"
	}
	return strings.ToUpper(host[:1]) + host[1:]
}
