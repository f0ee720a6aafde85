package tutorials

import (
	"context"
	"fmt"
)

const sampleContent = `# Getting Started with First Principles

This is a sample tutorial to test the system after recreating the database.

## What Are First Principles?

First principles thinking is a problem-solving technique that involves breaking down complex problems into their most basic, foundational elements. Instead of reasoning by analogy or convention, you start from fundamental truths and build up your understanding from there.

## Why Use First Principles?

1. **Deeper Understanding**: You truly comprehend the subject matter
2. **Innovation**: You're not constrained by existing solutions
3. **Problem Solving**: You can tackle novel challenges effectively
4. **Critical Thinking**: You develop stronger analytical skills

## How to Apply First Principles

### Step 1: Identify the Problem
Clearly define what you're trying to solve or understand.

### Step 2: Break It Down
Decompose the problem into its fundamental components.

### Step 3: Examine Assumptions
Question everything you think you know about the problem.

### Step 4: Rebuild from Scratch
Using only verified facts, construct your understanding anew.

## Example: Electric Cars

When Elon Musk applied first principles to electric cars:

- **Traditional thinking**: "Electric cars are expensive because batteries are expensive"
- **First principles**: "What are the material costs of a battery?"

By examining the raw materials (lithium, cobalt, etc.), he realized batteries could be much cheaper if manufactured differently.

## Conclusion

First principles thinking takes more effort initially but leads to breakthrough insights and robust solutions. Practice this approach consistently to develop your analytical thinking skills.`

// SampleTutorial returns the tutorial inserted into an empty database by
// Seed.
func SampleTutorial() *Tutorial {
	return &Tutorial{
		Title:       "Getting Started with First Principles",
		Description: "Learn the fundamental approach to problem-solving that breaks down complex issues into their basic elements.",
		Body:        FlatBody{Content: sampleContent},
		GitHubURL:   "https://github.com/example/first-principles",
		Author:      "First Principles Team",
		Category:    "Fundamentals",
		Difficulty:  Beginner,
		ReadTime:    5,
	}
}

// Seed inserts the sample tutorial when the store is empty. It reports
// whether anything was inserted.
func Seed(ctx context.Context, store *Store) (*Tutorial, bool, error) {
	n, err := store.Count(ctx)
	if err != nil {
		return nil, false, err
	}
	if n > 0 {
		log.WithField("count", n).Info("database already has tutorials, skipping sample data")
		return nil, false, nil
	}

	t := SampleTutorial()
	if err := store.Create(ctx, t); err != nil {
		return nil, false, fmt.Errorf("inserting sample tutorial: %w", err)
	}
	log.WithField("id", t.ID).Info("sample tutorial inserted")
	return t, true, nil
}
