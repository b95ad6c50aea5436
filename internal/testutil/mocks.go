package testutil

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/shiftly/shiftly-backend/internal/domain"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	ByID       map[uuid.UUID]*domain.User
	ByUsername map[string]*domain.User
	CreateFn   func(user *domain.User) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		ByID:       make(map[uuid.UUID]*domain.User),
		ByUsername: make(map[string]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByUsername retrieves a user by username
func (m *MockUserRepository) GetByUsername(username string) (*domain.User, error) {
	if user, ok := m.ByUsername[username]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// Create creates a new user
func (m *MockUserRepository) Create(user *domain.User) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(user)
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	m.AddUser(user)
	return user, nil
}

// SetActive toggles a user's active flag
func (m *MockUserRepository) SetActive(id uuid.UUID, active bool) error {
	user, ok := m.ByID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Active = active
	return nil
}

// CountByRole counts users with the given role
func (m *MockUserRepository) CountByRole(role domain.Role) (int, error) {
	count := 0
	for _, user := range m.ByID {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.ByID[user.ID] = user
	m.ByUsername[user.Username] = user
}

// MockWorkspaceRepository is a mock implementation of domain.WorkspaceRepository
type MockWorkspaceRepository struct {
	Workspaces  map[int32]*domain.Workspace
	Memberships *MockMembershipRepository
	NextID      int32
}

// NewMockWorkspaceRepository creates a new MockWorkspaceRepository
func NewMockWorkspaceRepository(memberships *MockMembershipRepository) *MockWorkspaceRepository {
	return &MockWorkspaceRepository{
		Workspaces:  make(map[int32]*domain.Workspace),
		Memberships: memberships,
		NextID:      1,
	}
}

// GetByID retrieves a workspace by ID
func (m *MockWorkspaceRepository) GetByID(id int32) (*domain.Workspace, error) {
	if ws, ok := m.Workspaces[id]; ok {
		return ws, nil
	}
	return nil, domain.ErrWorkspaceNotFound
}

// GetByName retrieves a workspace by name
func (m *MockWorkspaceRepository) GetByName(name string) (*domain.Workspace, error) {
	for _, ws := range m.Workspaces {
		if ws.Name == name {
			return ws, nil
		}
	}
	return nil, domain.ErrWorkspaceNotFound
}

// GetAllForUser returns the workspaces the user holds a membership in
func (m *MockWorkspaceRepository) GetAllForUser(userID uuid.UUID) ([]*domain.Workspace, error) {
	var out []*domain.Workspace
	for _, ws := range m.Workspaces {
		if _, err := m.Memberships.GetByUserAndWorkspace(userID, ws.ID); err == nil {
			out = append(out, ws)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Create creates a new workspace
func (m *MockWorkspaceRepository) Create(workspace *domain.Workspace) (*domain.Workspace, error) {
	workspace.ID = m.NextID
	m.NextID++
	workspace.CreatedAt = time.Now().UTC()
	workspace.UpdatedAt = workspace.CreatedAt
	m.Workspaces[workspace.ID] = workspace
	return workspace, nil
}

// Update updates a workspace
func (m *MockWorkspaceRepository) Update(workspace *domain.Workspace) (*domain.Workspace, error) {
	if _, ok := m.Workspaces[workspace.ID]; !ok {
		return nil, domain.ErrWorkspaceNotFound
	}
	m.Workspaces[workspace.ID] = workspace
	return workspace, nil
}

// Delete deletes a workspace
func (m *MockWorkspaceRepository) Delete(id int32) error {
	if _, ok := m.Workspaces[id]; !ok {
		return domain.ErrWorkspaceNotFound
	}
	delete(m.Workspaces, id)
	return nil
}

// AddWorkspace adds a workspace to the mock repository (helper for tests)
func (m *MockWorkspaceRepository) AddWorkspace(ws *domain.Workspace) {
	m.Workspaces[ws.ID] = ws
	if ws.ID >= m.NextID {
		m.NextID = ws.ID + 1
	}
}

// MockMembershipRepository is a mock implementation of domain.MembershipRepository
type MockMembershipRepository struct {
	Memberships map[int32]*domain.Membership
	NextID      int32
}

// NewMockMembershipRepository creates a new MockMembershipRepository
func NewMockMembershipRepository() *MockMembershipRepository {
	return &MockMembershipRepository{
		Memberships: make(map[int32]*domain.Membership),
		NextID:      1,
	}
}

// GetByID retrieves a membership by ID
func (m *MockMembershipRepository) GetByID(id int32) (*domain.Membership, error) {
	if mb, ok := m.Memberships[id]; ok {
		return mb, nil
	}
	return nil, domain.ErrMembershipNotFound
}

// GetByUserAndWorkspace retrieves the membership linking a user to a workspace
func (m *MockMembershipRepository) GetByUserAndWorkspace(userID uuid.UUID, workspaceID int32) (*domain.Membership, error) {
	for _, mb := range m.Memberships {
		if mb.UserID == userID && mb.WorkspaceID == workspaceID {
			return mb, nil
		}
	}
	return nil, domain.ErrMembershipNotFound
}

// Create creates a new membership
func (m *MockMembershipRepository) Create(membership *domain.Membership) (*domain.Membership, error) {
	if _, err := m.GetByUserAndWorkspace(membership.UserID, membership.WorkspaceID); err == nil {
		return nil, domain.ErrAlreadyMember
	}
	membership.ID = m.NextID
	m.NextID++
	membership.CreatedAt = time.Now().UTC()
	m.Memberships[membership.ID] = membership
	return membership, nil
}

// AddMembership adds a membership to the mock repository (helper for tests)
func (m *MockMembershipRepository) AddMembership(mb *domain.Membership) {
	m.Memberships[mb.ID] = mb
	if mb.ID >= m.NextID {
		m.NextID = mb.ID + 1
	}
}

// MockWorkSessionRepository is a mock implementation of domain.WorkSessionRepository
type MockWorkSessionRepository struct {
	Sessions map[int32]*domain.WorkSession
	Users    *MockUserRepository
	NextID   int32
}

// NewMockWorkSessionRepository creates a new MockWorkSessionRepository
func NewMockWorkSessionRepository() *MockWorkSessionRepository {
	return &MockWorkSessionRepository{
		Sessions: make(map[int32]*domain.WorkSession),
		NextID:   1,
	}
}

// GetByID retrieves a session by ID
func (m *MockWorkSessionRepository) GetByID(id int32) (*domain.WorkSession, error) {
	if s, ok := m.Sessions[id]; ok {
		return s, nil
	}
	return nil, domain.ErrSessionNotFound
}

// Create creates a new session
func (m *MockWorkSessionRepository) Create(session *domain.WorkSession) (*domain.WorkSession, error) {
	session.ID = m.NextID
	m.NextID++
	m.Sessions[session.ID] = session
	return session, nil
}

// FindOpen returns the open session for (user, workspace)
func (m *MockWorkSessionRepository) FindOpen(userID uuid.UUID, workspaceID int32) (*domain.WorkSession, error) {
	for _, s := range m.sorted() {
		if s.UserID == userID && s.WorkspaceID == workspaceID && s.Status == domain.SessionOpen {
			return s, nil
		}
	}
	return nil, domain.ErrSessionNotFound
}

// CountInRange counts the user's sessions with check-in inside [start, end]
func (m *MockWorkSessionRepository) CountInRange(userID uuid.UUID, workspaceID int32, start, end time.Time) (int, error) {
	count := 0
	for _, s := range m.Sessions {
		if s.UserID == userID && s.WorkspaceID == workspaceID && inRange(s.CheckIn, start, end) {
			count++
		}
	}
	return count, nil
}

// Close marks a session CLOSED with its computed minutes
func (m *MockWorkSessionRepository) Close(id int32, checkOut time.Time, totalMinutes, extraMinutes int) (*domain.WorkSession, error) {
	s, ok := m.Sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	out := checkOut
	s.CheckOut = &out
	s.TotalMinutes = totalMinutes
	s.ExtraMinutes = extraMinutes
	s.Status = domain.SessionClosed
	return s, nil
}

// AssignShift sets a session's shift label
func (m *MockWorkSessionRepository) AssignShift(id int32, shift domain.WorkShift) (*domain.WorkSession, error) {
	s, ok := m.Sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	sh := shift
	s.Shift = &sh
	return s, nil
}

// FindByShiftOnDay returns any session of the user with the shift label in [start, end]
func (m *MockWorkSessionRepository) FindByShiftOnDay(userID uuid.UUID, shift domain.WorkShift, start, end time.Time) (*domain.WorkSession, error) {
	for _, s := range m.sorted() {
		if s.UserID == userID && s.Shift != nil && *s.Shift == shift && inRange(s.CheckIn, start, end) {
			return s, nil
		}
	}
	return nil, domain.ErrSessionNotFound
}

// LatestInRange returns the user's most recent session checked in inside [start, end]
func (m *MockWorkSessionRepository) LatestInRange(userID uuid.UUID, workspaceID int32, start, end time.Time) (*domain.WorkSession, error) {
	var latest *domain.WorkSession
	for _, s := range m.Sessions {
		if s.UserID != userID || s.WorkspaceID != workspaceID || !inRange(s.CheckIn, start, end) {
			continue
		}
		if latest == nil || s.CheckIn.After(latest.CheckIn) {
			latest = s
		}
	}
	if latest == nil {
		return nil, domain.ErrSessionNotFound
	}
	return latest, nil
}

// ListByUser lists all sessions of a user, most recent first
func (m *MockWorkSessionRepository) ListByUser(userID uuid.UUID) ([]*domain.WorkSession, error) {
	var out []*domain.WorkSession
	for _, s := range m.sorted() {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckIn.After(out[j].CheckIn) })
	return out, nil
}

// ListClosedByUserSince lists closed sessions checked in at or after since
func (m *MockWorkSessionRepository) ListClosedByUserSince(userID uuid.UUID, since time.Time) ([]*domain.WorkSession, error) {
	var out []*domain.WorkSession
	for _, s := range m.sorted() {
		if s.UserID == userID && s.Status == domain.SessionClosed && !s.CheckIn.Before(since) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckIn.Before(out[j].CheckIn) })
	return out, nil
}

// ListClosedByUserInRange lists closed sessions checked in inside [start, end]
func (m *MockWorkSessionRepository) ListClosedByUserInRange(userID uuid.UUID, start, end time.Time) ([]*domain.WorkSession, error) {
	var out []*domain.WorkSession
	for _, s := range m.sorted() {
		if s.UserID == userID && s.Status == domain.SessionClosed && inRange(s.CheckIn, start, end) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckIn.Before(out[j].CheckIn) })
	return out, nil
}

// SumClosedMinutesSince sums closed-session minutes from since to now
func (m *MockWorkSessionRepository) SumClosedMinutesSince(userID uuid.UUID, workspaceID int32, since time.Time) (*domain.MinuteTotals, error) {
	var totals domain.MinuteTotals
	for _, s := range m.Sessions {
		if s.UserID == userID && s.WorkspaceID == workspaceID && s.Status == domain.SessionClosed && !s.CheckIn.Before(since) {
			totals.TotalMinutes += s.TotalMinutes
			totals.ExtraMinutes += s.ExtraMinutes
		}
	}
	return &totals, nil
}

// ListAll lists every session, most recent first
func (m *MockWorkSessionRepository) ListAll() ([]*domain.WorkSession, error) {
	out := m.sorted()
	sort.Slice(out, func(i, j int) bool { return out[i].CheckIn.After(out[j].CheckIn) })
	return out, nil
}

// ListActiveWorkers lists open sessions joined with their users
func (m *MockWorkSessionRepository) ListActiveWorkers() ([]*domain.ActiveWorker, error) {
	var out []*domain.ActiveWorker
	for _, s := range m.sorted() {
		if s.Status != domain.SessionOpen {
			continue
		}
		w := &domain.ActiveWorker{UserID: s.UserID, CheckIn: s.CheckIn}
		if m.Users != nil {
			if u, ok := m.Users.ByID[s.UserID]; ok {
				w.Username = u.Username
				w.Role = u.Role
			}
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckIn.Before(out[j].CheckIn) })
	return out, nil
}

// AddSession adds a session to the mock repository (helper for tests)
func (m *MockWorkSessionRepository) AddSession(s *domain.WorkSession) {
	m.Sessions[s.ID] = s
	if s.ID >= m.NextID {
		m.NextID = s.ID + 1
	}
}

func (m *MockWorkSessionRepository) sorted() []*domain.WorkSession {
	out := make([]*domain.WorkSession, 0, len(m.Sessions))
	for _, s := range m.Sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

func copySession(s *domain.WorkSession) *domain.WorkSession {
	c := *s
	if s.CheckOut != nil {
		out := *s.CheckOut
		c.CheckOut = &out
	}
	if s.Shift != nil {
		sh := *s.Shift
		c.Shift = &sh
	}
	return &c
}

// MockTipPoolRepository is a mock implementation of domain.TipPoolRepository.
// It shares session state with a MockWorkSessionRepository so that the
// transactional pool creation can be observed and rolled back in tests.
type MockTipPoolRepository struct {
	Pools         map[int32]*domain.TipPool
	Distributions []*domain.TipDistribution
	Sessions      *MockWorkSessionRepository
	NextPoolID    int32
	NextDistID    int32

	// InsertDistributionsFn, when set, replaces the default insert so
	// tests can force a mid-transaction failure.
	InsertDistributionsFn func(poolID int32, userIDs []uuid.UUID, amount int) error
}

// NewMockTipPoolRepository creates a new MockTipPoolRepository backed by
// the given session repository
func NewMockTipPoolRepository(sessions *MockWorkSessionRepository) *MockTipPoolRepository {
	return &MockTipPoolRepository{
		Pools:      make(map[int32]*domain.TipPool),
		Sessions:   sessions,
		NextPoolID: 1,
		NextDistID: 1,
	}
}

// GetByDateAndShift retrieves the pool for a day key and shift
func (m *MockTipPoolRepository) GetByDateAndShift(date time.Time, shift domain.WorkShift) (*domain.TipPool, error) {
	for _, p := range m.Pools {
		if p.Date.Equal(date) && p.Shift == shift {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListAll retrieves every pool with its distribution rows
func (m *MockTipPoolRepository) ListAll() ([]*domain.TipPoolWithDistributions, error) {
	var out []*domain.TipPoolWithDistributions
	for _, p := range m.Pools {
		wp := &domain.TipPoolWithDistributions{TipPool: *p}
		for _, d := range m.Distributions {
			if d.TipPoolID == p.ID {
				wp.Distributions = append(wp.Distributions, d)
			}
		}
		out = append(out, wp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// ListByUser retrieves all of a user's daily tips, most recent first
func (m *MockTipPoolRepository) ListByUser(userID uuid.UUID) ([]*domain.DailyTip, error) {
	return m.listTips(userID, time.Time{})
}

// ListByUserSince retrieves a user's daily tips for pools dated at or after since
func (m *MockTipPoolRepository) ListByUserSince(userID uuid.UUID, since time.Time) ([]*domain.DailyTip, error) {
	return m.listTips(userID, since)
}

func (m *MockTipPoolRepository) listTips(userID uuid.UUID, since time.Time) ([]*domain.DailyTip, error) {
	var out []*domain.DailyTip
	for _, d := range m.Distributions {
		if d.UserID != userID {
			continue
		}
		p, ok := m.Pools[d.TipPoolID]
		if !ok || p.Date.Before(since) {
			continue
		}
		out = append(out, &domain.DailyTip{
			Date:            p.Date,
			Shift:           p.Shift,
			Amount:          d.Amount,
			TotalPoolAmount: p.TotalAmount,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// SumByUserSince sums a user's distribution amounts for pools at or after since
func (m *MockTipPoolRepository) SumByUserSince(userID uuid.UUID, since time.Time) (int, error) {
	tips, _ := m.listTips(userID, since)
	sum := 0
	for _, t := range tips {
		sum += t.Amount
	}
	return sum, nil
}

// SumByUser sums all of a user's distribution amounts
func (m *MockTipPoolRepository) SumByUser(userID uuid.UUID) (int, error) {
	return m.SumByUserSince(userID, time.Time{})
}

// InTx runs fn against the shared in-memory state, snapshotting first so
// an error restores sessions, pools, and distributions unchanged.
func (m *MockTipPoolRepository) InTx(fn func(tx domain.PoolTx) error) error {
	sessionSnap := make(map[int32]*domain.WorkSession, len(m.Sessions.Sessions))
	for id, s := range m.Sessions.Sessions {
		sessionSnap[id] = copySession(s)
	}
	poolSnap := make(map[int32]*domain.TipPool, len(m.Pools))
	for id, p := range m.Pools {
		c := *p
		poolSnap[id] = &c
	}
	distSnap := make([]*domain.TipDistribution, len(m.Distributions))
	copy(distSnap, m.Distributions)
	nextPool, nextDist := m.NextPoolID, m.NextDistID

	if err := fn(&mockPoolTx{repo: m}); err != nil {
		m.Sessions.Sessions = sessionSnap
		m.Pools = poolSnap
		m.Distributions = distSnap
		m.NextPoolID, m.NextDistID = nextPool, nextDist
		return err
	}
	return nil
}

// AddPool adds a pool to the mock repository (helper for tests)
func (m *MockTipPoolRepository) AddPool(p *domain.TipPool) {
	m.Pools[p.ID] = p
	if p.ID >= m.NextPoolID {
		m.NextPoolID = p.ID + 1
	}
}

// AddDistribution adds a distribution row (helper for tests)
func (m *MockTipPoolRepository) AddDistribution(d *domain.TipDistribution) {
	m.Distributions = append(m.Distributions, d)
	if d.ID >= m.NextDistID {
		m.NextDistID = d.ID + 1
	}
}

// mockPoolTx implements domain.PoolTx over the shared mock state
type mockPoolTx struct {
	repo *MockTipPoolRepository
}

func (t *mockPoolTx) OpenSessions(start, end time.Time) ([]*domain.WorkSession, error) {
	var out []*domain.WorkSession
	for _, s := range t.repo.Sessions.sorted() {
		if s.Status == domain.SessionOpen && inRange(s.CheckIn, start, end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (t *mockPoolTx) CloseSession(id int32, checkOut time.Time, totalMinutes, extraMinutes int) error {
	_, err := t.repo.Sessions.Close(id, checkOut, totalMinutes, extraMinutes)
	return err
}

func (t *mockPoolTx) HasUnclassified(start, end time.Time) (bool, error) {
	for _, s := range t.repo.Sessions.Sessions {
		if s.Status == domain.SessionClosed && s.Shift == nil && inRange(s.CheckIn, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (t *mockPoolTx) ClosedSessionUserIDs(start, end time.Time, shift domain.WorkShift) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, s := range t.repo.Sessions.sorted() {
		if s.Status == domain.SessionClosed && s.Shift != nil && *s.Shift == shift && inRange(s.CheckIn, start, end) {
			ids = append(ids, s.UserID)
		}
	}
	return ids, nil
}

func (t *mockPoolTx) InsertPool(pool *domain.TipPool) (*domain.TipPool, error) {
	pool.ID = t.repo.NextPoolID
	t.repo.NextPoolID++
	pool.CreatedAt = time.Now().UTC()
	t.repo.Pools[pool.ID] = pool
	return pool, nil
}

func (t *mockPoolTx) InsertDistributions(poolID int32, userIDs []uuid.UUID, amount int) error {
	if t.repo.InsertDistributionsFn != nil {
		return t.repo.InsertDistributionsFn(poolID, userIDs, amount)
	}
	for _, userID := range userIDs {
		t.repo.AddDistribution(&domain.TipDistribution{
			ID:        t.repo.NextDistID,
			TipPoolID: poolID,
			UserID:    userID,
			Amount:    amount,
		})
	}
	return nil
}

// MockWorkScheduleRepository is a mock implementation of domain.WorkScheduleRepository
type MockWorkScheduleRepository struct {
	Schedules   map[int32]*domain.WorkSchedule
	Memberships *MockMembershipRepository
	Users       *MockUserRepository
	NextID      int32
}

// NewMockWorkScheduleRepository creates a new MockWorkScheduleRepository
func NewMockWorkScheduleRepository(memberships *MockMembershipRepository, users *MockUserRepository) *MockWorkScheduleRepository {
	return &MockWorkScheduleRepository{
		Schedules:   make(map[int32]*domain.WorkSchedule),
		Memberships: memberships,
		Users:       users,
		NextID:      1,
	}
}

// GetByID returns the schedule only if it belongs to the workspace
func (m *MockWorkScheduleRepository) GetByID(id int32, workspaceID int32) (*domain.WorkSchedule, error) {
	s, ok := m.Schedules[id]
	if !ok {
		return nil, domain.ErrScheduleNotFound
	}
	mb, err := m.Memberships.GetByID(s.MembershipID)
	if err != nil || mb.WorkspaceID != workspaceID {
		return nil, domain.ErrScheduleNotFound
	}
	return s, nil
}

// FindOverlapping returns a schedule of the membership on the date whose
// window intersects [start, end)
func (m *MockWorkScheduleRepository) FindOverlapping(membershipID int32, date time.Time, start, end time.Time, excludeID int32) (*domain.WorkSchedule, error) {
	for _, s := range m.Schedules {
		if s.ID != excludeID && s.MembershipID == membershipID && s.Date.Equal(date) &&
			s.StartTime.Before(end) && s.EndTime.After(start) {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create creates a new schedule
func (m *MockWorkScheduleRepository) Create(schedule *domain.WorkSchedule) (*domain.WorkSchedule, error) {
	schedule.ID = m.NextID
	m.NextID++
	schedule.CreatedAt = time.Now().UTC()
	schedule.UpdatedAt = schedule.CreatedAt
	m.Schedules[schedule.ID] = schedule
	return schedule, nil
}

// Update rewrites a schedule's date and window
func (m *MockWorkScheduleRepository) Update(schedule *domain.WorkSchedule) (*domain.WorkSchedule, error) {
	existing, ok := m.Schedules[schedule.ID]
	if !ok {
		return nil, domain.ErrScheduleNotFound
	}
	existing.Date = schedule.Date
	existing.StartTime = schedule.StartTime
	existing.EndTime = schedule.EndTime
	existing.UpdatedAt = time.Now().UTC()
	return existing, nil
}

// UpdateStatus sets a schedule's status
func (m *MockWorkScheduleRepository) UpdateStatus(id int32, status domain.ScheduleStatus) (*domain.WorkSchedule, error) {
	s, ok := m.Schedules[id]
	if !ok {
		return nil, domain.ErrScheduleNotFound
	}
	s.Status = status
	s.UpdatedAt = time.Now().UTC()
	return s, nil
}

// Delete removes a schedule if it belongs to the workspace
func (m *MockWorkScheduleRepository) Delete(id int32, workspaceID int32) (bool, error) {
	if _, err := m.GetByID(id, workspaceID); err != nil {
		return false, nil
	}
	delete(m.Schedules, id)
	return true, nil
}

// ListByWorkspace lists all schedules of a workspace with member info
func (m *MockWorkScheduleRepository) ListByWorkspace(workspaceID int32) ([]*domain.ScheduleWithUser, error) {
	var out []*domain.ScheduleWithUser
	for _, s := range m.Schedules {
		mb, err := m.Memberships.GetByID(s.MembershipID)
		if err != nil || mb.WorkspaceID != workspaceID {
			continue
		}
		sw := &domain.ScheduleWithUser{WorkSchedule: *s, UserID: mb.UserID}
		if u, ok := m.Users.ByID[mb.UserID]; ok {
			sw.Username = u.Username
		}
		out = append(out, sw)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

// ListByMember lists a user's schedules within a workspace
func (m *MockWorkScheduleRepository) ListByMember(userID uuid.UUID, workspaceID int32) ([]*domain.WorkSchedule, error) {
	mb, err := m.Memberships.GetByUserAndWorkspace(userID, workspaceID)
	if err != nil {
		return nil, nil
	}
	var out []*domain.WorkSchedule
	for _, s := range m.Schedules {
		if s.MembershipID == mb.ID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

// AddSchedule adds a schedule to the mock repository (helper for tests)
func (m *MockWorkScheduleRepository) AddSchedule(s *domain.WorkSchedule) {
	m.Schedules[s.ID] = s
	if s.ID >= m.NextID {
		m.NextID = s.ID + 1
	}
}
