// Package seed provides helpers to create demo data for development
// databases. Not intended for production use.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var categories = []string{
	"Engineering", "Design", "Travel", "Food", "Music",
	"Books", "Science", "Productivity", "Uncategorized",
}

// Run populates the database with users, follow edges, posts, comments
// and interactions.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	if opts.NumUsers <= 0 {
		opts.NumUsers = 25
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 60
	}

	if opts.ShouldClean {
		log.Println("Cleaning existing data...")
		for _, table := range []string{
			"comment_likes", "comments", "post_sections", "posts",
			"interaction_entries", "following_entries", "follower_entries", "users",
		} {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clean %s: %w", table, err)
			}
		}
	}

	// Users
	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		name := gofakeit.Name()
		user := &models.User{
			UID:        fmt.Sprintf("seed-%s", gofakeit.UUID()),
			Name:       name,
			Email:      fmt.Sprintf("%d.%s", i, strings.ToLower(gofakeit.Email())),
			Bio:        gofakeit.Sentence(8),
			Location:   gofakeit.City(),
			Avatar:     fmt.Sprintf("https://i.pravatar.cc/150?u=%d", i),
			Website:    gofakeit.URL(),
			IsVerified: r.Intn(3) != 0,
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))

	// Follow mesh: both sides of every edge, like the live write path.
	for _, u := range users {
		for i := 0; i < r.Intn(6); i++ {
			target := users[r.Intn(len(users))]
			if target.ID == u.ID {
				continue
			}
			db.Create(&models.FollowingEntry{UserID: u.ID, TargetID: target.ID})
			db.Create(&models.FollowerEntry{UserID: target.ID, FollowerID: u.ID})
		}
	}

	// Posts with sections
	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[r.Intn(len(users))]
		post := &models.Post{
			Title:     gofakeit.Sentence(6),
			Category:  categories[r.Intn(len(categories))],
			Summary:   gofakeit.Sentence(15),
			Author:    author.AsAuthorSnapshot(),
			AuthorUID: author.UID,
			Tags:      []string{gofakeit.Word(), gofakeit.Word()},
			ReadTime:  fmt.Sprintf("%d min read", 2+r.Intn(10)),
			Published: true,
			Views:     r.Intn(500),
			CreatedAt: time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
		}
		numSections := 1 + r.Intn(4)
		for p := 0; p < numSections; p++ {
			post.Sections = append(post.Sections, models.Section{
				Position:   p,
				SubHeading: gofakeit.Sentence(4),
				Content:    gofakeit.Paragraph(2, 4, 8, "\n"),
			})
		}
		for _, sec := range post.Sections {
			post.TableOfContents = append(post.TableOfContents, sec.SubHeading)
		}
		if err := db.Create(post).Error; err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("Seeded %d posts", len(posts))

	// Likes and saves, counter kept in step with the set
	for _, u := range users {
		for i := 0; i < r.Intn(8); i++ {
			post := posts[r.Intn(len(posts))]
			res := db.Create(&models.InteractionEntry{
				UserID: u.ID, PostID: post.ID, Kind: models.InteractionLiked,
			})
			if res.Error == nil {
				db.Model(&models.Post{}).Where("id = ?", post.ID).
					Update("likes", gorm.Expr("likes + 1"))
			}
		}
		for i := 0; i < r.Intn(4); i++ {
			post := posts[r.Intn(len(posts))]
			db.Create(&models.InteractionEntry{
				UserID: u.ID, PostID: post.ID, Kind: models.InteractionSaved,
			})
		}
	}

	// Comments and single-level replies
	numComments := 0
	for _, post := range posts {
		parents := make([]*models.Comment, 0)
		for i := 0; i < r.Intn(5); i++ {
			author := users[r.Intn(len(users))]
			comment := &models.Comment{
				PostID:    post.ID,
				Author:    author.AsAuthorSnapshot(),
				Content:   gofakeit.Sentence(10 + r.Intn(20)),
				CreatedAt: post.CreatedAt.Add(time.Duration(1+r.Intn(72)) * time.Hour),
			}
			if err := db.Create(comment).Error; err != nil {
				return fmt.Errorf("create comment: %w", err)
			}
			parents = append(parents, comment)
			numComments++
		}
		for _, parent := range parents {
			for i := 0; i < r.Intn(3); i++ {
				author := users[r.Intn(len(users))]
				parentID := parent.ID
				reply := &models.Comment{
					PostID:    post.ID,
					ParentID:  &parentID,
					Author:    author.AsAuthorSnapshot(),
					Content:   gofakeit.Sentence(6 + r.Intn(12)),
					CreatedAt: parent.CreatedAt.Add(time.Duration(1+r.Intn(48)) * time.Hour),
				}
				if err := db.Create(reply).Error; err != nil {
					return fmt.Errorf("create reply: %w", err)
				}
				numComments++
			}
		}
	}
	log.Printf("Seeded %d comments", numComments)

	return nil
}
