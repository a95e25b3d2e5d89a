package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	redisad "booking_front/internal/adapters/redis"
	"booking_front/internal/domain"
)

func newMini(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = c.Close() })
	return mr, c
}

func TestSessionRepo_SaveLoadDelete(t *testing.T) {
	_, c := newMini(t)
	repo := redisad.NewSessionRepo(c)
	ctx := context.Background()

	want := domain.Session{Token: "tok", UserID: "42", Role: domain.RoleAdministrator}
	if err := repo.Save(ctx, "abc", want, time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := repo.Load(ctx, "abc")
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	if err := repo.Delete(ctx, "abc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := repo.Load(ctx, "abc"); ok {
		t.Fatalf("expected no session after delete")
	}
}

func TestSessionRepo_Expires(t *testing.T) {
	mr, c := newMini(t)
	repo := redisad.NewSessionRepo(c)
	ctx := context.Background()

	_ = repo.Save(ctx, "abc", domain.Session{Token: "tok", UserID: "1", Role: domain.RoleCustomer}, time.Minute)
	mr.FastForward(2 * time.Minute)

	if _, ok, err := repo.Load(ctx, "abc"); ok || err != nil {
		t.Fatalf("expected expired session, ok=%v err=%v", ok, err)
	}
}

func TestSessionRepo_CorruptOrHalfRecord(t *testing.T) {
	mr, c := newMini(t)
	repo := redisad.NewSessionRepo(c)
	ctx := context.Background()

	_ = mr.Set("session:bad", "{not json")
	_ = mr.Set("session:half", `{"token":"tok","user_id":"","role":"customer"}`)

	for _, id := range []string{"bad", "half"} {
		if _, ok, err := repo.Load(ctx, id); ok || err != nil {
			t.Fatalf("%s: expected no session, ok=%v err=%v", id, ok, err)
		}
	}
}

func TestCache_SetGetDel(t *testing.T) {
	_, c := newMini(t)
	cache := redisad.NewCache(c, "bf:")
	ctx := context.Background()

	rec := domain.HotelRecord{ID: "h1", Name: "Hotel Montaña Azul", Amenities: []string{"spa"}}
	if err := cache.Set(ctx, "hotel:h1", rec, 30); err != nil {
		t.Fatalf("set: %v", err)
	}
	var got domain.HotelRecord
	ok, err := cache.Get(ctx, "hotel:h1", &got)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Name != rec.Name || len(got.Amenities) != 1 {
		t.Fatalf("unexpected cached value %+v", got)
	}

	_ = cache.Del(ctx, "hotel:h1")
	if ok, _ := cache.Get(ctx, "hotel:h1", &got); ok {
		t.Fatalf("expected miss after delete")
	}
}
