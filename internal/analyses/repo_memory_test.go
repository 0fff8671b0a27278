package analyses

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestMemoryRepoListNewestFirstWithoutResumeText(t *testing.T) {
	repo := NewMemoryRepo()
	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		err := repo.Create(context.Background(), Analysis{
			ID:         fmt.Sprintf("analysis-%d", i),
			UserID:     "user-1",
			FileName:   fmt.Sprintf("resume-%d.pdf", i),
			ResumeText: "full resume text",
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if err := repo.Create(context.Background(), Analysis{ID: "other", UserID: "user-2", CreatedAt: base}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	listed, err := repo.ListByUser(context.Background(), "user-1", 10, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("len = %d, want 3", len(listed))
	}
	if listed[0].ID != "analysis-2" || listed[2].ID != "analysis-0" {
		t.Fatalf("order = %s..%s, want newest first", listed[0].ID, listed[2].ID)
	}
	for _, analysis := range listed {
		if analysis.ResumeText != "" {
			t.Fatal("list results must not carry resume text")
		}
	}
}

func TestMemoryRepoListPagination(t *testing.T) {
	repo := NewMemoryRepo()
	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		_ = repo.Create(context.Background(), Analysis{
			ID:        fmt.Sprintf("analysis-%d", i),
			UserID:    "user-1",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	page, err := repo.ListByUser(context.Background(), "user-1", 2, 1)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(page) != 2 || page[0].ID != "analysis-3" || page[1].ID != "analysis-2" {
		t.Fatalf("page = %+v", page)
	}

	empty, err := repo.ListByUser(context.Background(), "user-1", 2, 10)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("len = %d, want 0", len(empty))
	}
}

func TestMemoryRepoUpdateMatchOwnerScoped(t *testing.T) {
	repo := NewMemoryRepo()
	_ = repo.Create(context.Background(), Analysis{ID: "analysis-1", UserID: "owner"})

	if err := repo.UpdateMatch(context.Background(), "analysis-1", "intruder", "jd", 50, nil); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := repo.UpdateMatch(context.Background(), "analysis-1", "owner", "jd", 50, []string{"Rust"}); err != nil {
		t.Fatalf("UpdateMatch: %v", err)
	}

	stored, err := repo.GetOwned(context.Background(), "analysis-1", "owner")
	if err != nil {
		t.Fatalf("GetOwned: %v", err)
	}
	if stored.MatchScore == nil || *stored.MatchScore != 50 {
		t.Fatalf("matchScore = %v", stored.MatchScore)
	}
}
