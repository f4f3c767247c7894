package storage

import (
	"context"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
)

// deferredRemoval saves synchronously and removes through the task queue.
type deferredRemoval struct {
	store ports.FileStore
	tasks ports.TaskQueue
}

// WithDeferredRemoval turns Remove into fire-and-forget work on tasks.
func WithDeferredRemoval(store ports.FileStore, tasks ports.TaskQueue) ports.FileStore {
	return &deferredRemoval{store: store, tasks: tasks}
}

func (d *deferredRemoval) Save(ctx context.Context, kind domain.UploadKind, file ports.FileInput) (string, error) {
	return d.store.Save(ctx, kind, file)
}

func (d *deferredRemoval) Remove(_ context.Context, ref string) error {
	d.tasks.Enqueue(ports.Task{
		Key:  ref,
		Name: "storage.remove",
		Run: func(ctx context.Context) error {
			return d.store.Remove(ctx, ref)
		},
	})
	return nil
}
