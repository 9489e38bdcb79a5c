package main

import (
	"context"
	"fmt"
	"log"

	"github.com/folio/internal/config"
	"github.com/folio/internal/db"
	"github.com/folio/internal/service"
	_ "github.com/joho/godotenv/autoload"
)

type samplePost struct {
	Title    string
	Excerpt  string
	Content  string
	Category string
}

var samplePosts = []samplePost{
	{
		Title:    "Slow Mornings, Sharper Work",
		Excerpt:  "Why the first hour of the day sets the tone for every campaign I run.",
		Content:  "I stopped opening my inbox before nine.\n\nThe quiet hour now goes to reading, sketching and a long walk. The ideas that survive the walk are usually the ones worth pitching.",
		Category: "Lifestyle",
	},
	{
		Title:    "Reading Your Funnel Backwards",
		Excerpt:  "Start from the conversion and walk back to the first touchpoint.",
		Content:  "Most funnel reviews start at the top. I start at the bottom.\n\nLook at who converted, then ask which message they saw first. The answer is rarely the ad with the biggest budget.",
		Category: "Digital Marketing",
	},
	{
		Title:    "Constraints Are a Brief",
		Excerpt:  "A tight budget is not a limitation, it is the most honest brief you will get.",
		Content:  "Every great campaign I have worked on had a constraint that forced a better idea.\n\nWrite the constraint at the top of the page and design toward it.",
		Category: "Creativity",
	},
	{
		Title:    "Three Questions Before Any Launch",
		Excerpt:  "Who is it for, what should they do, and how will we know it worked?",
		Content:  "If the team cannot answer these in one sentence each, the launch is not ready.\n\nThe third question is the one that gets skipped most often.",
		Category: "Campaign Strategy",
	},
	{
		Title:    "Your Profile Is a Landing Page",
		Excerpt:  "Treat your bio with the same care as a product page.",
		Content:  "Visitors decide in seconds whether to keep reading.\n\nLead with the outcome you deliver, then the proof, then the way to reach you.",
		Category: "Personal Branding",
	},
	{
		Title:    "Editing Is Where Posts Get Good",
		Excerpt:  "The first draft is for you. The second is for the reader.",
		Content:  "Cut the introduction, then cut the conclusion.\n\nWhat is left is usually the post you meant to write.",
		Category: "Content",
	},
}

// Seeds the configured database with sample posts and a contact message.
func main() {
	cfg := config.Load()
	gdb, err := db.Init(db.Options{
		Driver: cfg.DatabaseDriver,
		Path:   cfg.DatabasePath,
		DSN:    cfg.DatabaseDSN,
	})
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	fmt.Println("generating sample data...")

	ctx := context.Background()
	created, err := createTestPosts(ctx, service.NewPostService(gdb))
	if err != nil {
		log.Fatalf("failed to create posts: %v", err)
	}
	if err := createTestMessage(ctx, service.NewContactService(gdb)); err != nil {
		log.Fatalf("failed to create contact message: %v", err)
	}

	fmt.Printf("done: %d posts created\n", created)
}

// createTestPosts inserts the sample posts unless the database already has posts.
func createTestPosts(ctx context.Context, posts *service.PostService) (int, error) {
	existing, err := posts.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		fmt.Println("posts already exist, skipping")
		return 0, nil
	}

	for _, sample := range samplePosts {
		if _, err := posts.Create(ctx, service.PostInput{
			Title:    sample.Title,
			Excerpt:  sample.Excerpt,
			Content:  sample.Content,
			Category: sample.Category,
		}); err != nil {
			return 0, fmt.Errorf("create %q: %w", sample.Title, err)
		}
	}
	return len(samplePosts), nil
}

func createTestMessage(ctx context.Context, messages *service.ContactService) error {
	existing, err := messages.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	_, err = messages.Submit(ctx, service.MessageInput{
		Name:    "Sample Visitor",
		Email:   "visitor@example.com",
		Message: "Loved the post on funnels. Are you available for a workshop?",
	})
	return err
}
