package session

import (
	"testing"
	"time"

	"docchat-backend/models"
)

func TestStore_CreateAndLookup(t *testing.T) {
	store := NewStore()

	chunks := []models.EmbeddedChunk{
		{Chunk: models.Chunk{Index: 0, Text: "first"}, Vector: []float64{1, 2}},
		{Chunk: models.Chunk{Index: 1, Text: "second"}, Vector: []float64{3, 4}},
	}
	sess := store.Create(chunks)
	if sess.ID == "" {
		t.Fatal("expected a generated session id")
	}

	got, ok := store.Chunks(sess.ID)
	if !ok {
		t.Fatal("expected session to exist")
	}
	if len(got) != 2 || got[1].Text != "second" {
		t.Errorf("unexpected chunks %+v", got)
	}

	if _, ok := store.Chunks("missing"); ok {
		t.Error("expected lookup miss for unknown id")
	}
}

func TestStore_AppendTurnAndHistory(t *testing.T) {
	store := NewStore()
	sess := store.Create(nil)

	if ok := store.AppendTurn(sess.ID, models.ChatTurn{Sender: models.SenderUser, Text: "hi", Timestamp: time.Now()}); !ok {
		t.Fatal("AppendTurn failed for existing session")
	}
	store.AppendTurn(sess.ID, models.ChatTurn{Sender: models.SenderAssistant, Text: "hello", Timestamp: time.Now()})

	history, ok := store.History(sess.ID)
	if !ok {
		t.Fatal("expected history for existing session")
	}
	if len(history) != 2 || history[0].Text != "hi" || history[1].Text != "hello" {
		t.Errorf("unexpected history %+v", history)
	}

	// the returned slice is a copy
	history[0].Text = "mutated"
	again, _ := store.History(sess.ID)
	if again[0].Text != "hi" {
		t.Error("History returned a shared slice")
	}

	if ok := store.AppendTurn("missing", models.ChatTurn{}); ok {
		t.Error("AppendTurn succeeded for unknown session")
	}
}

func TestStore_ReplaceResetsHistory(t *testing.T) {
	store := NewStore()
	sess := store.Create([]models.EmbeddedChunk{
		{Chunk: models.Chunk{Index: 0, Text: "old"}, Vector: []float64{1}},
	})
	store.AppendTurn(sess.ID, models.ChatTurn{Sender: models.SenderUser, Text: "about old"})

	if ok := store.Replace(sess.ID, []models.EmbeddedChunk{
		{Chunk: models.Chunk{Index: 0, Text: "new"}, Vector: []float64{2}},
	}); !ok {
		t.Fatal("Replace failed for existing session")
	}

	chunks, _ := store.Chunks(sess.ID)
	if len(chunks) != 1 || chunks[0].Text != "new" {
		t.Errorf("expected replaced chunks, got %+v", chunks)
	}
	history, _ := store.History(sess.ID)
	if len(history) != 0 {
		t.Errorf("expected history reset on replace, got %+v", history)
	}

	if ok := store.Replace("missing", nil); ok {
		t.Error("Replace succeeded for unknown session")
	}
}

func TestStore_Delete(t *testing.T) {
	store := NewStore()
	sess := store.Create(nil)

	store.Delete(sess.ID)
	if _, ok := store.Chunks(sess.ID); ok {
		t.Error("expected session gone after delete")
	}
}
