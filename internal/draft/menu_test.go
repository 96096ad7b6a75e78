package draft

import (
	"errors"
	"reflect"
	"testing"
)

func TestMenuEntriesOrder(t *testing.T) {
	g := newTestGame(t)
	light := g.MenuEntries(Light)
	if !reflect.DeepEqual(light, []Kind{NoKind, Pawn, Knight, Bishop, Rook, Queen}) {
		t.Fatalf("light entries: %v", light)
	}
	dark := g.MenuEntries(Dark)
	if !reflect.DeepEqual(dark, []Kind{Queen, Rook, Bishop, Knight, Pawn, NoKind}) {
		t.Fatalf("dark entries: %v", dark)
	}
}

func TestMenuOffersKingAfterRefund(t *testing.T) {
	g := newTestGame(t)
	if err := g.RefundPiece(Sq(7, 4)); err != nil {
		t.Fatalf("refund king: %v", err)
	}
	entries := g.MenuEntries(Light)
	if entries[len(entries)-1] != King {
		t.Fatalf("king should be offered once missing: %v", entries)
	}
	if g.MenuEntries(Dark)[0] != Queen {
		t.Fatalf("dark still has a king and must not be offered one")
	}

	if err := g.OpenMenu(Light, Sq(7, 2)); err != nil {
		t.Fatalf("OpenMenu: %v", err)
	}
	if err := g.PickMenu(Light, King); err != nil {
		t.Fatalf("PickMenu king: %v", err)
	}
	if g.Board().Count(Light, King) != 1 {
		t.Fatalf("king not re-drafted")
	}
	if g.Budget(Light) != 39 {
		t.Fatalf("king should be free, budget %d", g.Budget(Light))
	}
}

func TestOnlyOneMenuOpen(t *testing.T) {
	g := newTestGame(t)
	if err := g.OpenMenu(Light, Sq(6, 0)); err != nil {
		t.Fatalf("OpenMenu light: %v", err)
	}
	if err := g.OpenMenu(Dark, Sq(1, 0)); !errors.Is(err, ErrMenuBusy) {
		t.Fatalf("expected ErrMenuBusy, got %v", err)
	}
	if !g.AnyMenuOpen() || g.Menu(Dark).Open {
		t.Fatalf("unexpected menu state")
	}
	if err := g.OpenMenu(Light, Sq(6, 1)); err != nil {
		t.Fatalf("reopen own menu: %v", err)
	}
	if g.Menu(Light).Origin != Sq(6, 1) {
		t.Fatalf("origin not moved: %v", g.Menu(Light).Origin)
	}
	g.CloseMenu(Light)
	if g.AnyMenuOpen() {
		t.Fatalf("menu still open after close")
	}
	if err := g.OpenMenu(Dark, Sq(1, 0)); err != nil {
		t.Fatalf("OpenMenu dark after close: %v", err)
	}
}

func TestPickMenuPlacesAndRefunds(t *testing.T) {
	g := newTestGame(t)
	if err := g.PickMenu(Dark, Rook); !errors.Is(err, ErrMenuClosed) {
		t.Fatalf("expected ErrMenuClosed, got %v", err)
	}

	if err := g.OpenMenu(Dark, Sq(1, 3)); err != nil {
		t.Fatalf("OpenMenu: %v", err)
	}
	if err := g.PickMenu(Dark, Rook); err != nil {
		t.Fatalf("PickMenu: %v", err)
	}
	if g.Menu(Dark).Open {
		t.Fatalf("menu not closed after pick")
	}
	if g.Budget(Dark) != 34 {
		t.Fatalf("dark budget %d, want 34", g.Budget(Dark))
	}

	if err := g.OpenMenu(Dark, Sq(1, 3)); err != nil {
		t.Fatalf("OpenMenu: %v", err)
	}
	if err := g.PickMenu(Dark, NoKind); err != nil {
		t.Fatalf("PickMenu none: %v", err)
	}
	if g.Board().Occupied(Sq(1, 3)) || g.Budget(Dark) != 39 {
		t.Fatalf("none entry did not refund")
	}

	if err := g.OpenMenu(Dark, Sq(2, 2)); err != nil {
		t.Fatalf("OpenMenu: %v", err)
	}
	if err := g.PickMenu(Dark, NoKind); err != nil {
		t.Fatalf("none on empty square should just close: %v", err)
	}
}

func TestMenuUnavailableWhilePlaying(t *testing.T) {
	g := newTestGame(t)
	if err := g.OpenMenu(Light, Sq(6, 6)); err != nil {
		t.Fatalf("OpenMenu: %v", err)
	}
	startPlay(t, g)
	if g.AnyMenuOpen() {
		t.Fatalf("menus must close when play starts")
	}
	if err := g.OpenMenu(Light, Sq(6, 6)); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("expected ErrWrongPhase, got %v", err)
	}
}

func TestViewMenuAffordability(t *testing.T) {
	g := newTestGame(t)
	for f := 0; f < 4; f++ {
		if err := g.PlacePiece(Queen, Light, Sq(6, f)); err != nil {
			t.Fatalf("place: %v", err)
		}
	}
	// 39 - 36 = 3 left: knight and bishop fit, rook and queen do not.
	if err := g.OpenMenu(Light, Sq(5, 0)); err != nil {
		t.Fatalf("OpenMenu: %v", err)
	}
	v := g.View()
	want := map[string]bool{"none": true, "pawn": true, "knight": true, "bishop": true, "rook": false, "queen": false}
	if len(v.Light.MenuItems) != len(want) {
		t.Fatalf("menu items: %+v", v.Light.MenuItems)
	}
	for _, item := range v.Light.MenuItems {
		if item.Affordable != want[item.Kind] {
			t.Fatalf("%s affordable=%v", item.Kind, item.Affordable)
		}
	}
	if !v.Light.MenuOpen || v.Light.MenuAt.Rank != 5 {
		t.Fatalf("menu not reflected in view: %+v", v.Light)
	}
}
