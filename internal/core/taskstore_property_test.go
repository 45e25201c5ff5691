package core

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/petshow73/taskdesk/pkg/models"
)

// Property: numeric ids are assigned 1, 2, 3, ... in creation order and are
// never reused, no matter how many tasks are removed in between.
func TestProperty_TaskIDsMonotonic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		store := newTestStore()

		var assigned []int64
		live := make(map[int64]struct{})

		steps := rapid.IntRange(1, 60).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			removeInstead := len(live) > 0 && rapid.Bool().Draw(rt, "remove")
			if removeInstead {
				var victim int64
				for id := range live {
					victim = id
					break
				}
				if err := store.RemoveTask(victim); err != nil {
					rt.Fatalf("removing task %d: %v", victim, err)
				}
				delete(live, victim)
				continue
			}

			task, err := store.CreateTask(CreateTaskInput{Title: "task"})
			if err != nil {
				rt.Fatalf("creating task: %v", err)
			}
			assigned = append(assigned, task.ID)
			live[task.ID] = struct{}{}
		}

		for i, id := range assigned {
			if id != int64(i+1) {
				rt.Fatalf("creation %d got id %d, want %d", i+1, id, i+1)
			}
		}
	})
}

// Property: after any sequence of status transitions, Completed is non-nil
// exactly when the status is done.
func TestProperty_CompletionMatchesStatus(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		store := newTestStore()
		task, err := store.CreateTask(CreateTaskInput{Title: "lifecycle"})
		if err != nil {
			rt.Fatalf("creating task: %v", err)
		}

		transitions := rapid.IntRange(1, 30).Draw(rt, "transitions")
		for i := 0; i < transitions; i++ {
			next := rapid.SampledFrom(models.Statuses).Draw(rt, "status")
			updated, err := store.ChangeStatus(task.ID, next)
			if err != nil {
				rt.Fatalf("transition %d to %s: %v", i+1, next, err)
			}

			if next == models.StatusDone && updated.Completed == nil {
				rt.Fatalf("transition %d: done task has no completion timestamp", i+1)
			}
			if next != models.StatusDone && updated.Completed != nil {
				rt.Fatalf("transition %d: %s task kept completion timestamp %v", i+1, next, updated.Completed)
			}
		}
	})
}

// Property: codes within a project are dense and insertion-ordered even when
// creations are spread across several projects.
func TestProperty_CodesDensePerProject(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		store := newTestStore()

		keys := []string{"ALPHA", "BETA", "GAMMA"}
		perKey := make(map[string]int)

		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			key := rapid.SampledFrom(keys).Draw(rt, "key")
			task, err := store.CreateTask(CreateTaskInput{Title: "task", ProjectKey: key})
			if err != nil {
				rt.Fatalf("creating task in %s: %v", key, err)
			}
			perKey[key]++

			want, err := store.PeekSequence(key)
			if err != nil {
				rt.Fatalf("peeking %s: %v", key, err)
			}
			if want != perKey[key] {
				rt.Fatalf("%s counter is %d after %d creations", key, want, perKey[key])
			}

			found, err := store.FindByCode(task.Code)
			if err != nil {
				rt.Fatalf("looking up %s: %v", task.Code, err)
			}
			if found.ID != task.ID {
				rt.Fatalf("code %s resolves to id %d, want %d", task.Code, found.ID, task.ID)
			}
		}
	})
}
