package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hotelops/backend/internal/apperr"
	"github.com/hotelops/backend/internal/authz"
	"github.com/hotelops/backend/internal/events"
	"github.com/hotelops/backend/internal/models"
	"github.com/hotelops/backend/internal/rbac"
	"github.com/hotelops/backend/internal/repositories"
	"go.uber.org/zap"
)

// --- fakes ---

type fakeReservationStore struct {
	rows map[uuid.UUID]models.Reservation
}

func newFakeReservationStore() *fakeReservationStore {
	return &fakeReservationStore{rows: make(map[uuid.UUID]models.Reservation)}
}

func (f *fakeReservationStore) Create(_ context.Context, res *models.Reservation) error {
	res.ID = uuid.New()
	res.CreatedAt = time.Now()
	res.UpdatedAt = res.CreatedAt
	f.rows[res.ID] = *res
	return nil
}

func (f *fakeReservationStore) GetByID(_ context.Context, hotelID, id uuid.UUID) (*models.Reservation, error) {
	row, ok := f.rows[id]
	if !ok || row.HotelID != hotelID {
		return nil, nil
	}
	copy := row
	return &copy, nil
}

func (f *fakeReservationStore) List(_ context.Context, filter repositories.ReservationFilter) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, row := range f.rows {
		if row.HotelID == filter.HotelID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeReservationStore) Update(_ context.Context, res *models.Reservation) error {
	res.UpdatedAt = time.Now()
	f.rows[res.ID] = *res
	return nil
}

func (f *fakeReservationStore) ListOverdueConfirmed(_ context.Context, cutoff time.Time) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, row := range f.rows {
		if row.Status == models.ReservationStatusConfirmed && row.CheckInDate != nil && row.CheckInDate.Before(cutoff) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeReservationStore) HasActiveForRoom(_ context.Context, hotelID, roomID uuid.UUID) (bool, error) {
	for _, row := range f.rows {
		if row.HotelID != hotelID || row.RoomID == nil || *row.RoomID != roomID {
			continue
		}
		switch row.Status {
		case models.ReservationStatusPending, models.ReservationStatusConfirmed, models.ReservationStatusCheckedIn:
			return true, nil
		}
	}
	return false, nil
}

type fakeRoomStore struct {
	rooms     map[uuid.UUID]models.Room
	roomTypes map[uuid.UUID]models.RoomType
}

func newFakeRoomStore() *fakeRoomStore {
	return &fakeRoomStore{
		rooms:     make(map[uuid.UUID]models.Room),
		roomTypes: make(map[uuid.UUID]models.RoomType),
	}
}

func (f *fakeRoomStore) Create(_ context.Context, room *models.Room) error {
	room.ID = uuid.New()
	f.rooms[room.ID] = *room
	return nil
}

func (f *fakeRoomStore) GetByID(_ context.Context, hotelID, id uuid.UUID) (*models.Room, error) {
	room, ok := f.rooms[id]
	if !ok || room.HotelID != hotelID {
		return nil, nil
	}
	copy := room
	return &copy, nil
}

func (f *fakeRoomStore) List(_ context.Context, hotelID uuid.UUID, _, _ int) ([]models.Room, error) {
	var out []models.Room
	for _, room := range f.rooms {
		if room.HotelID == hotelID {
			out = append(out, room)
		}
	}
	return out, nil
}

func (f *fakeRoomStore) Update(_ context.Context, room *models.Room) error {
	f.rooms[room.ID] = *room
	return nil
}

func (f *fakeRoomStore) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	room := f.rooms[id]
	room.Status = status
	f.rooms[id] = room
	return nil
}

func (f *fakeRoomStore) Delete(_ context.Context, hotelID, id uuid.UUID) error {
	delete(f.rooms, id)
	return nil
}

func (f *fakeRoomStore) GetRoomType(_ context.Context, hotelID, id uuid.UUID) (*models.RoomType, error) {
	rt, ok := f.roomTypes[id]
	if !ok || rt.HotelID != hotelID {
		return nil, nil
	}
	copy := rt
	return &copy, nil
}

type fakeGuestStore struct {
	guests map[uuid.UUID]models.Guest
}

func newFakeGuestStore() *fakeGuestStore {
	return &fakeGuestStore{guests: make(map[uuid.UUID]models.Guest)}
}

func (f *fakeGuestStore) Create(_ context.Context, g *models.Guest) error {
	g.ID = uuid.New()
	f.guests[g.ID] = *g
	return nil
}

func (f *fakeGuestStore) GetByID(_ context.Context, hotelID, id uuid.UUID) (*models.Guest, error) {
	g, ok := f.guests[id]
	if !ok || g.HotelID != hotelID {
		return nil, nil
	}
	copy := g
	return &copy, nil
}

func (f *fakeGuestStore) List(_ context.Context, hotelID uuid.UUID, _, _ int) ([]models.Guest, error) {
	var out []models.Guest
	for _, g := range f.guests {
		if g.HotelID == hotelID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGuestStore) Update(_ context.Context, g *models.Guest) error {
	f.guests[g.ID] = *g
	return nil
}

func (f *fakeGuestStore) Delete(_ context.Context, hotelID, id uuid.UUID) error {
	delete(f.guests, id)
	return nil
}

type fakeActivityStore struct {
	activities map[uuid.UUID]models.Activity
	slots      map[uuid.UUID]models.ActivitySlot
}

func newFakeActivityStore() *fakeActivityStore {
	return &fakeActivityStore{
		activities: make(map[uuid.UUID]models.Activity),
		slots:      make(map[uuid.UUID]models.ActivitySlot),
	}
}

func (f *fakeActivityStore) GetByID(_ context.Context, hotelID, id uuid.UUID) (*models.Activity, error) {
	a, ok := f.activities[id]
	if !ok || a.HotelID != hotelID {
		return nil, nil
	}
	copy := a
	return &copy, nil
}

func (f *fakeActivityStore) GetSlot(_ context.Context, activityID, slotID uuid.UUID) (*models.ActivitySlot, error) {
	s, ok := f.slots[slotID]
	if !ok || s.ActivityID != activityID {
		return nil, nil
	}
	copy := s
	return &copy, nil
}

type recordedAudit struct {
	action       string
	resourceType string
	resourceID   *uuid.UUID
	previous     any
	next         any
}

type fakeRecorder struct {
	records []recordedAudit
}

func (f *fakeRecorder) Record(_ *authz.Context, action, resourceType string, resourceID *uuid.UUID, previous, next any) {
	f.records = append(f.records, recordedAudit{action, resourceType, resourceID, previous, next})
}

type fakePublisher struct {
	published []events.Event
	seq       uint64
}

func (f *fakePublisher) Publish(e events.Event) uint64 {
	f.seq++
	e.Seq = f.seq
	f.published = append(f.published, e)
	return f.seq
}

// --- fixture ---

type fixture struct {
	svc       *ReservationService
	store     *fakeReservationStore
	rooms     *fakeRoomStore
	guests    *fakeGuestStore
	acts      *fakeActivityStore
	recorder  *fakeRecorder
	publisher *fakePublisher

	authCtx    *authz.Context
	guestID    uuid.UUID
	roomTypeID uuid.UUID
	roomID     uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hotelID := uuid.New()

	f := &fixture{
		store:     newFakeReservationStore(),
		rooms:     newFakeRoomStore(),
		guests:    newFakeGuestStore(),
		acts:      newFakeActivityStore(),
		recorder:  &fakeRecorder{},
		publisher: &fakePublisher{},
		authCtx: &authz.Context{
			UserID:  uuid.New(),
			Email:   "desk@grand.example",
			HotelID: hotelID,
			Role:    rbac.RoleAdmin,
		},
	}
	f.svc = NewReservationService(f.store, f.rooms, f.guests, f.acts, f.recorder, f.publisher, zap.NewNop())

	guest := models.Guest{ID: uuid.New(), HotelID: hotelID, FullName: "Ada Byron"}
	f.guests.guests[guest.ID] = guest
	f.guestID = guest.ID

	rt := models.RoomType{ID: uuid.New(), HotelID: hotelID, Name: "Double", Capacity: 2, BasePrice: "120.00"}
	f.rooms.roomTypes[rt.ID] = rt
	f.roomTypeID = rt.ID

	room := models.Room{ID: uuid.New(), HotelID: hotelID, RoomTypeID: rt.ID, Number: "204", Floor: 2, Status: models.RoomStatusAvailable}
	f.rooms.rooms[room.ID] = room
	f.roomID = room.ID

	return f
}

func (f *fixture) lodgingInput() CreateReservationInput {
	checkIn := time.Now().Add(24 * time.Hour)
	checkOut := checkIn.Add(48 * time.Hour)
	return CreateReservationInput{
		GuestID:      f.guestID,
		RoomTypeID:   &f.roomTypeID,
		RoomID:       &f.roomID,
		CheckInDate:  &checkIn,
		CheckOutDate: &checkOut,
		GuestCount:   2,
		Currency:     "EUR",
		TotalAmount:  "240.00",
	}
}

func (f *fixture) create(t *testing.T) *models.Reservation {
	t.Helper()
	res, err := f.svc.Create(context.Background(), f.authCtx, f.lodgingInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return res
}

func (f *fixture) roomStatus(t *testing.T) string {
	t.Helper()
	return f.rooms.rooms[f.roomID].Status
}

// --- tests ---

func TestCreateStartsPending(t *testing.T) {
	f := newFixture(t)
	res := f.create(t)

	if res.Status != models.ReservationStatusPending {
		t.Errorf("status = %q, want pending", res.Status)
	}
	if len(f.recorder.records) != 1 {
		t.Fatalf("got %d audit records, want 1", len(f.recorder.records))
	}
	rec := f.recorder.records[0]
	if rec.action != models.AuditActionCreate {
		t.Errorf("audit action = %q", rec.action)
	}
	if rec.previous != nil {
		t.Errorf("create audit should have nil previous, got %v", rec.previous)
	}
	if len(f.publisher.published) != 1 {
		t.Fatalf("got %d events, want 1", len(f.publisher.published))
	}
	if f.publisher.published[0].Type != events.EventReservationCreated {
		t.Errorf("event type = %q", f.publisher.published[0].Type)
	}
}

func TestCreateRejectsCrossTenantGuest(t *testing.T) {
	f := newFixture(t)
	input := f.lodgingInput()
	input.GuestID = uuid.New() // no such guest in this hotel

	_, err := f.svc.Create(context.Background(), f.authCtx, input)
	if apperr.From(err).Code != apperr.CodeNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestCreateRequiresExactlyOneBookingKind(t *testing.T) {
	f := newFixture(t)

	neither := f.lodgingInput()
	neither.RoomTypeID = nil
	if _, err := f.svc.Create(context.Background(), f.authCtx, neither); apperr.From(err).Code != apperr.CodeInvalidInput {
		t.Errorf("neither kind: expected invalid_input, got %v", err)
	}

	both := f.lodgingInput()
	actID := uuid.New()
	both.ActivityID = &actID
	if _, err := f.svc.Create(context.Background(), f.authCtx, both); apperr.From(err).Code != apperr.CodeInvalidInput {
		t.Errorf("both kinds: expected invalid_input, got %v", err)
	}
}

func TestCreateRejectsCrossKindFields(t *testing.T) {
	f := newFixture(t)
	act := models.Activity{ID: uuid.New(), HotelID: f.authCtx.HotelID, Name: "Spa", Capacity: 6, BasePrice: "45.00"}
	f.acts.activities[act.ID] = act
	slot := models.ActivitySlot{ID: uuid.New(), ActivityID: act.ID, StartsAt: time.Now(), EndsAt: time.Now().Add(time.Hour)}
	f.acts.slots[slot.ID] = slot

	activityInput := func() CreateReservationInput {
		return CreateReservationInput{
			GuestID:     f.guestID,
			ActivityID:  &act.ID,
			SlotID:      &slot.ID,
			GuestCount:  1,
			Currency:    "EUR",
			TotalAmount: "45.00",
		}
	}

	withRoom := activityInput()
	withRoom.RoomID = &f.roomID
	if _, err := f.svc.Create(context.Background(), f.authCtx, withRoom); apperr.From(err).Code != apperr.CodeInvalidInput {
		t.Errorf("activity with room_id: expected invalid_input, got %v", err)
	}

	checkIn := time.Now().Add(24 * time.Hour)
	withDates := activityInput()
	withDates.CheckInDate = &checkIn
	if _, err := f.svc.Create(context.Background(), f.authCtx, withDates); apperr.From(err).Code != apperr.CodeInvalidInput {
		t.Errorf("activity with check_in_date: expected invalid_input, got %v", err)
	}

	withSlot := f.lodgingInput()
	withSlot.SlotID = &slot.ID
	if _, err := f.svc.Create(context.Background(), f.authCtx, withSlot); apperr.From(err).Code != apperr.CodeInvalidInput {
		t.Errorf("lodging with slot_id: expected invalid_input, got %v", err)
	}

	if len(f.store.rows) != 0 {
		t.Errorf("rejected creates persisted %d reservations", len(f.store.rows))
	}

	// A clean activity booking carries no room through its lifecycle.
	res, err := f.svc.Create(context.Background(), f.authCtx, activityInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.RoomID != nil {
		t.Fatal("activity booking stored a room_id")
	}
	if _, err := f.svc.Confirm(context.Background(), f.authCtx, res.ID); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if _, err := f.svc.CheckIn(context.Background(), f.authCtx, res.ID); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if got := f.rooms.rooms[f.roomID].Status; got != models.RoomStatusAvailable {
		t.Errorf("room status = %q after activity check-in, want available", got)
	}
}

func TestCreateActivityBooking(t *testing.T) {
	f := newFixture(t)
	act := models.Activity{ID: uuid.New(), HotelID: f.authCtx.HotelID, Name: "Spa", Capacity: 6, BasePrice: "45.00"}
	f.acts.activities[act.ID] = act
	slot := models.ActivitySlot{ID: uuid.New(), ActivityID: act.ID, StartsAt: time.Now(), EndsAt: time.Now().Add(time.Hour)}
	f.acts.slots[slot.ID] = slot

	res, err := f.svc.Create(context.Background(), f.authCtx, CreateReservationInput{
		GuestID:     f.guestID,
		ActivityID:  &act.ID,
		SlotID:      &slot.ID,
		GuestCount:  1,
		Currency:    "EUR",
		TotalAmount: "45.00",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.IsLodging() {
		t.Error("activity booking should not be lodging")
	}
	if res.Status != models.ReservationStatusPending {
		t.Errorf("status = %q", res.Status)
	}
}

func TestIllegalTransitionsLeaveEverythingUntouched(t *testing.T) {
	f := newFixture(t)

	type op struct {
		name string
		call func(id uuid.UUID) error
	}
	ops := []op{
		{"confirm", func(id uuid.UUID) error {
			_, err := f.svc.Confirm(context.Background(), f.authCtx, id)
			return err
		}},
		{"check_in", func(id uuid.UUID) error {
			_, err := f.svc.CheckIn(context.Background(), f.authCtx, id)
			return err
		}},
		{"check_out", func(id uuid.UUID) error {
			_, err := f.svc.CheckOut(context.Background(), f.authCtx, id)
			return err
		}},
		{"cancel", func(id uuid.UUID) error {
			_, err := f.svc.Cancel(context.Background(), f.authCtx, id, nil)
			return err
		}},
	}
	legal := map[string][]string{
		"confirm":   {models.ReservationStatusPending},
		"check_in":  {models.ReservationStatusConfirmed},
		"check_out": {models.ReservationStatusCheckedIn},
		"cancel":    {models.ReservationStatusPending, models.ReservationStatusConfirmed},
	}
	allStatuses := []string{
		models.ReservationStatusPending, models.ReservationStatusConfirmed,
		models.ReservationStatusCheckedIn, models.ReservationStatusCheckedOut,
		models.ReservationStatusCancelled, models.ReservationStatusNoShow,
	}
	isLegal := func(opName, status string) bool {
		for _, s := range legal[opName] {
			if s == status {
				return true
			}
		}
		return false
	}

	for _, o := range ops {
		for _, status := range allStatuses {
			if isLegal(o.name, status) {
				continue
			}
			t.Run(o.name+"/"+status, func(t *testing.T) {
				res := f.create(t)
				row := f.store.rows[res.ID]
				row.Status = status
				f.store.rows[res.ID] = row

				audits := len(f.recorder.records)
				published := len(f.publisher.published)
				roomBefore := f.roomStatus(t)

				err := o.call(res.ID)
				appErr := apperr.From(err)
				if appErr.Code != apperr.CodeInvalidTransition {
					t.Fatalf("expected invalid_transition, got %v", err)
				}
				if f.store.rows[res.ID].Status != status {
					t.Errorf("status changed to %q", f.store.rows[res.ID].Status)
				}
				if len(f.recorder.records) != audits {
					t.Error("audit record written for failed transition")
				}
				if len(f.publisher.published) != published {
					t.Error("event published for failed transition")
				}
				if f.roomStatus(t) != roomBefore {
					t.Errorf("room status changed to %q", f.roomStatus(t))
				}
			})
		}
	}
}

func TestFullLifecycleWithRoom(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.create(t)

	res, err := f.svc.Confirm(ctx, f.authCtx, res.ID)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if res.Status != models.ReservationStatusConfirmed {
		t.Errorf("status = %q", res.Status)
	}
	if res.ConfirmedBy == nil || *res.ConfirmedBy != f.authCtx.UserID {
		t.Errorf("ConfirmedBy = %v", res.ConfirmedBy)
	}
	if f.roomStatus(t) != models.RoomStatusAvailable {
		t.Errorf("room should stay available before check-in, got %q", f.roomStatus(t))
	}

	res, err = f.svc.CheckIn(ctx, f.authCtx, res.ID)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if f.roomStatus(t) != models.RoomStatusOccupied {
		t.Errorf("room = %q, want occupied", f.roomStatus(t))
	}

	res, err = f.svc.CheckOut(ctx, f.authCtx, res.ID)
	if err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if res.Status != models.ReservationStatusCheckedOut {
		t.Errorf("status = %q", res.Status)
	}
	if f.roomStatus(t) != models.RoomStatusAvailable {
		t.Errorf("room = %q, want available after checkout", f.roomStatus(t))
	}

	// One audit entry and one event per mutation: create + 3 transitions.
	if len(f.recorder.records) != 4 {
		t.Fatalf("got %d audit records, want 4", len(f.recorder.records))
	}
	wantActions := []string{
		models.AuditActionCreate, models.AuditActionConfirm,
		models.AuditActionCheckIn, models.AuditActionCheckOut,
	}
	for i, want := range wantActions {
		if f.recorder.records[i].action != want {
			t.Errorf("audit[%d].action = %q, want %q", i, f.recorder.records[i].action, want)
		}
		if f.recorder.records[i].resourceID == nil || *f.recorder.records[i].resourceID != res.ID {
			t.Errorf("audit[%d] wrong resource id", i)
		}
	}
	if len(f.publisher.published) != 4 {
		t.Fatalf("got %d events, want 4", len(f.publisher.published))
	}
	for i, evt := range f.publisher.published[1:] {
		if evt.Type != events.EventReservationUpdated {
			t.Errorf("event[%d].Type = %q", i+1, evt.Type)
		}
		if evt.SubjectID != res.ID {
			t.Errorf("event[%d] wrong subject", i+1)
		}
	}
}

func TestTransitionSnapshotsDifferOnlyInChangedFields(t *testing.T) {
	f := newFixture(t)
	res := f.create(t)

	if _, err := f.svc.Confirm(context.Background(), f.authCtx, res.ID); err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	rec := f.recorder.records[1]
	prev, ok := rec.previous.(models.Reservation)
	if !ok {
		t.Fatalf("previous snapshot type %T", rec.previous)
	}
	next, ok := rec.next.(models.Reservation)
	if !ok {
		t.Fatalf("next snapshot type %T", rec.next)
	}

	if prev.Status != models.ReservationStatusPending || next.Status != models.ReservationStatusConfirmed {
		t.Errorf("snapshot statuses %q -> %q", prev.Status, next.Status)
	}
	if prev.ConfirmedBy != nil {
		t.Error("previous snapshot should have no confirmer")
	}
	if next.ConfirmedBy == nil || *next.ConfirmedBy != f.authCtx.UserID {
		t.Error("next snapshot missing confirmer")
	}
	// Untouched fields identical.
	if prev.ID != next.ID || prev.GuestID != next.GuestID || prev.TotalAmount != next.TotalAmount {
		t.Error("unchanged fields differ between snapshots")
	}

	evt := f.publisher.published[1]
	if evt.Patch["status"] != models.ReservationStatusConfirmed {
		t.Errorf("patch status = %v", evt.Patch["status"])
	}
	if _, ok := evt.Patch["total_amount"]; ok {
		t.Error("patch should carry only changed fields")
	}
}

func TestCheckInFromPendingDoesNotTouchRoom(t *testing.T) {
	f := newFixture(t)
	res := f.create(t)

	_, err := f.svc.CheckIn(context.Background(), f.authCtx, res.ID)
	appErr := apperr.From(err)
	if appErr.Code != apperr.CodeInvalidTransition {
		t.Fatalf("expected invalid_transition, got %v", err)
	}
	if appErr.Message != `cannot check_in a reservation in status "pending"` {
		t.Errorf("message = %q", appErr.Message)
	}
	if f.roomStatus(t) != models.RoomStatusAvailable {
		t.Errorf("room = %q, want untouched", f.roomStatus(t))
	}
}

func TestCancelStampsActorAndReason(t *testing.T) {
	f := newFixture(t)
	res := f.create(t)

	reason := "guest called to cancel"
	res, err := f.svc.Cancel(context.Background(), f.authCtx, res.ID, &reason)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if res.Status != models.ReservationStatusCancelled {
		t.Errorf("status = %q", res.Status)
	}
	if res.CancelledBy == nil || *res.CancelledBy != f.authCtx.UserID {
		t.Errorf("CancelledBy = %v", res.CancelledBy)
	}
	if res.CancelReason == nil || *res.CancelReason != reason {
		t.Errorf("CancelReason = %v", res.CancelReason)
	}
}

func TestUpdateOnlyWhilePendingOrConfirmed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.create(t)

	count := 3
	updated, err := f.svc.Update(ctx, f.authCtx, res.ID, UpdateReservationInput{GuestCount: &count})
	if err != nil {
		t.Fatalf("Update on pending: %v", err)
	}
	if updated.GuestCount != 3 {
		t.Errorf("GuestCount = %d", updated.GuestCount)
	}
	evt := f.publisher.published[len(f.publisher.published)-1]
	if evt.Patch["guest_count"] != 3 {
		t.Errorf("patch = %v", evt.Patch)
	}
	if _, ok := evt.Patch["status"]; ok {
		t.Error("detail update should not patch status")
	}

	for _, status := range []string{
		models.ReservationStatusCheckedIn, models.ReservationStatusCheckedOut,
		models.ReservationStatusCancelled, models.ReservationStatusNoShow,
	} {
		row := f.store.rows[res.ID]
		row.Status = status
		f.store.rows[res.ID] = row

		_, err := f.svc.Update(ctx, f.authCtx, res.ID, UpdateReservationInput{GuestCount: &count})
		if apperr.From(err).Code != apperr.CodeInvalidTransition {
			t.Errorf("status %q: expected invalid_transition, got %v", status, err)
		}
	}
}

func TestGetCrossTenantIsNotFound(t *testing.T) {
	f := newFixture(t)
	res := f.create(t)

	other := &authz.Context{UserID: uuid.New(), HotelID: uuid.New(), Role: rbac.RoleOwner}
	_, err := f.svc.Get(context.Background(), other, res.ID)
	if apperr.From(err).Code != apperr.CodeNotFound {
		t.Fatalf("expected not_found for cross-tenant read, got %v", err)
	}
}

func TestSweepNoShows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// One overdue confirmed, one future confirmed, one overdue pending.
	overdue := f.create(t)
	if _, err := f.svc.Confirm(ctx, f.authCtx, overdue.ID); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	past := time.Now().Add(-48 * time.Hour)
	row := f.store.rows[overdue.ID]
	row.CheckInDate = &past
	f.store.rows[overdue.ID] = row

	future := f.create(t)
	if _, err := f.svc.Confirm(ctx, f.authCtx, future.ID); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	pendingOverdue := f.create(t)
	row = f.store.rows[pendingOverdue.ID]
	row.CheckInDate = &past
	f.store.rows[pendingOverdue.ID] = row

	marked, err := f.svc.SweepNoShows(ctx, time.Now().Add(-6*time.Hour))
	if err != nil {
		t.Fatalf("SweepNoShows: %v", err)
	}
	if marked != 1 {
		t.Errorf("marked = %d, want 1", marked)
	}
	if got := f.store.rows[overdue.ID].Status; got != models.ReservationStatusNoShow {
		t.Errorf("overdue status = %q, want no_show", got)
	}
	if got := f.store.rows[future.ID].Status; got != models.ReservationStatusConfirmed {
		t.Errorf("future status = %q, want confirmed", got)
	}
	if got := f.store.rows[pendingOverdue.ID].Status; got != models.ReservationStatusPending {
		t.Errorf("pending status = %q, want pending", got)
	}
}
