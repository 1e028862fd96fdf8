package service_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gearguard/maintenance-service/internal/domain"
	"github.com/gearguard/maintenance-service/internal/repository"
	"github.com/gearguard/maintenance-service/internal/service"
)

// In-memory repository fakes keep the service tests independent of postgres.
// They mirror the SQL filter semantics closely enough for lifecycle tests.

type fakeRequestRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]domain.MaintenanceRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{items: make(map[int64]domain.MaintenanceRequest)}
}

func (f *fakeRequestRepo) Create(_ context.Context, request *domain.MaintenanceRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	request.ID = f.nextID
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	f.items[request.ID] = *request
	return nil
}

func (f *fakeRequestRepo) Update(_ context.Context, request *domain.MaintenanceRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[request.ID]; !ok {
		return pgx.ErrNoRows
	}
	request.UpdatedAt = time.Now()
	f.items[request.ID] = *request
	return nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id int64) (*domain.MaintenanceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := item
	return &copied, nil
}

func (f *fakeRequestRepo) ListWithFilter(_ context.Context, filter repository.RequestFilter) ([]domain.MaintenanceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.MaintenanceRequest
	for _, item := range f.items {
		if filter.RequesterID != nil && item.RequesterID != *filter.RequesterID {
			continue
		}
		if filter.TeamID != nil && (item.TeamID == nil || *item.TeamID != *filter.TeamID) {
			continue
		}
		if filter.TechnicianID != nil && (item.TechnicianID == nil || *item.TechnicianID != *filter.TechnicianID) {
			continue
		}
		if filter.EquipmentID != nil && item.EquipmentID != *filter.EquipmentID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, item.Status) {
			continue
		}
		if len(filter.Types) > 0 && !containsType(filter.Types, item.Type) {
			continue
		}
		if len(filter.Priorities) > 0 && !containsPriority(filter.Priorities, item.Priority) {
			continue
		}
		if filter.SearchTerm != nil {
			term := strings.ToLower(strings.TrimSpace(*filter.SearchTerm))
			if term != "" && !strings.Contains(strings.ToLower(item.Subject), term) {
				continue
			}
		}
		if filter.ScheduledOnly && item.ScheduledDate == nil {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

func containsStatus(haystack []domain.RequestStatus, needle domain.RequestStatus) bool {
	for _, candidate := range haystack {
		if candidate == needle {
			return true
		}
	}
	return false
}

func containsType(haystack []domain.RequestType, needle domain.RequestType) bool {
	for _, candidate := range haystack {
		if candidate == needle {
			return true
		}
	}
	return false
}

func containsPriority(haystack []domain.RequestPriority, needle domain.RequestPriority) bool {
	for _, candidate := range haystack {
		if candidate == needle {
			return true
		}
	}
	return false
}

type fakeEquipmentRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]domain.Equipment
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{items: make(map[int64]domain.Equipment)}
}

func (f *fakeEquipmentRepo) Create(_ context.Context, equipment *domain.Equipment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	equipment.ID = f.nextID
	equipment.CreatedAt = time.Now()
	equipment.UpdatedAt = equipment.CreatedAt
	f.items[equipment.ID] = *equipment
	return nil
}

func (f *fakeEquipmentRepo) Update(_ context.Context, equipment *domain.Equipment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[equipment.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.items[equipment.ID] = *equipment
	return nil
}

func (f *fakeEquipmentRepo) GetByID(_ context.Context, id int64) (*domain.Equipment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := item
	return &copied, nil
}

func (f *fakeEquipmentRepo) ListWithFilter(_ context.Context, filter repository.EquipmentFilter) ([]domain.Equipment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Equipment
	for _, item := range f.items {
		if filter.Status != nil && item.Status != *filter.Status {
			continue
		}
		if filter.TeamID != nil && (item.TeamID == nil || *item.TeamID != *filter.TeamID) {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

func (f *fakeEquipmentRepo) SetStatus(_ context.Context, id int64, status domain.EquipmentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return pgx.ErrNoRows
	}
	item.Status = status
	f.items[id] = item
	return nil
}

type fakeUserRepo struct {
	items map[int64]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{items: make(map[int64]domain.User)}
}

func (f *fakeUserRepo) add(user domain.User) {
	f.items[user.ID] = user
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := item
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, item := range f.items {
		if item.Email == email {
			copied := item
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	var result []domain.User
	for _, item := range f.items {
		result = append(result, item)
	}
	return result, nil
}

func (f *fakeUserRepo) ListByTeam(_ context.Context, teamID int64) ([]domain.User, error) {
	var result []domain.User
	for _, item := range f.items {
		if item.TeamID != nil && *item.TeamID == teamID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (f *fakeUserRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	var result []domain.User
	for _, item := range f.items {
		if item.Role == role {
			result = append(result, item)
		}
	}
	return result, nil
}

type fakeTeamRepo struct {
	nextID int64
	items  map[int64]domain.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{items: make(map[int64]domain.Team)}
}

func (f *fakeTeamRepo) add(team domain.Team) {
	f.items[team.ID] = team
	if team.ID > f.nextID {
		f.nextID = team.ID
	}
}

func (f *fakeTeamRepo) Create(_ context.Context, team *domain.Team) error {
	f.nextID++
	team.ID = f.nextID
	f.items[team.ID] = *team
	return nil
}

func (f *fakeTeamRepo) Update(_ context.Context, team *domain.Team) error {
	if _, ok := f.items[team.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.items[team.ID] = *team
	return nil
}

func (f *fakeTeamRepo) GetByID(_ context.Context, id int64) (*domain.Team, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := item
	return &copied, nil
}

func (f *fakeTeamRepo) List(_ context.Context) ([]domain.Team, error) {
	var result []domain.Team
	for _, item := range f.items {
		result = append(result, item)
	}
	return result, nil
}

type fakeActivityRepo struct {
	mu      sync.Mutex
	nextID  int64
	entries []domain.RequestActivity
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{}
}

func (f *fakeActivityRepo) Create(_ context.Context, entry *domain.RequestActivity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	entry.ID = f.nextID
	entry.CreatedAt = time.Now()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeActivityRepo) ListByRequest(_ context.Context, requestID int64, _, _ int) ([]domain.RequestActivity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.RequestActivity
	for _, entry := range f.entries {
		if entry.RequestID == requestID {
			result = append(result, entry)
		}
	}
	return result, nil
}

// testEnv bundles the service under test with its seeded fakes.
type testEnv struct {
	requests  *service.RequestService
	kanban    *service.KanbanService
	reqRepo   *fakeRequestRepo
	equipRepo *fakeEquipmentRepo
	userRepo  *fakeUserRepo
	teamRepo  *fakeTeamRepo
	activity  *fakeActivityRepo

	admin      *domain.User
	manager    *domain.User
	technician *domain.User // team 1
	tech2      *domain.User // team 2
	enduser    *domain.User
}

func int64Ptr(v int64) *int64 { return &v }

func newTestEnv() *testEnv {
	env := &testEnv{
		reqRepo:   newFakeRequestRepo(),
		equipRepo: newFakeEquipmentRepo(),
		userRepo:  newFakeUserRepo(),
		teamRepo:  newFakeTeamRepo(),
		activity:  newFakeActivityRepo(),
	}

	env.admin = &domain.User{ID: 1, Name: "Ada Admin", Email: "admin@example.com", Role: domain.RoleAdmin}
	env.manager = &domain.User{ID: 2, Name: "Max Manager", Email: "manager@example.com", Role: domain.RoleManager}
	env.technician = &domain.User{ID: 3, Name: "Tia Tech", Email: "t1@example.com", Role: domain.RoleTechnician, TeamID: int64Ptr(1)}
	env.tech2 = &domain.User{ID: 4, Name: "Theo Tech", Email: "t2@example.com", Role: domain.RoleTechnician, TeamID: int64Ptr(2)}
	env.enduser = &domain.User{ID: 5, Name: "Uma User", Email: "u@example.com", Role: domain.RoleUser}
	for _, user := range []*domain.User{env.admin, env.manager, env.technician, env.tech2, env.enduser} {
		env.userRepo.add(*user)
	}

	env.teamRepo.add(domain.Team{ID: 1, Name: "Mechanical Team", Color: "#2563eb"})
	env.teamRepo.add(domain.Team{ID: 2, Name: "Electrical Team", Color: "#f59e0b"})

	env.equipRepo.items[1] = domain.Equipment{
		ID: 1, Name: "CNC Mill", CategoryID: 1, DepartmentID: 1, LocationID: 1,
		TeamID: int64Ptr(1), DefaultTechnicianID: int64Ptr(3), Status: domain.EquipmentStatusActive,
	}
	env.equipRepo.items[2] = domain.Equipment{
		ID: 2, Name: "Old Press", CategoryID: 1, DepartmentID: 1, LocationID: 1,
		Status: domain.EquipmentStatusScrapped,
	}
	env.equipRepo.items[3] = domain.Equipment{
		ID: 3, Name: "HVAC Unit", CategoryID: 2, DepartmentID: 2, LocationID: 2,
		TeamID: int64Ptr(2), Status: domain.EquipmentStatusActive,
	}
	env.equipRepo.nextID = 3

	env.requests = service.NewRequestService(service.RequestDependencies{
		RequestRepo:   env.reqRepo,
		EquipmentRepo: env.equipRepo,
		UserRepo:      env.userRepo,
		TeamRepo:      env.teamRepo,
		ActivityRepo:  env.activity,
	})
	env.kanban = service.NewKanbanService(env.requests)
	return env
}

// seedRequest inserts a request directly into the fake store.
func (env *testEnv) seedRequest(request domain.MaintenanceRequest) domain.MaintenanceRequest {
	env.reqRepo.mu.Lock()
	defer env.reqRepo.mu.Unlock()
	env.reqRepo.nextID++
	request.ID = env.reqRepo.nextID
	if request.Status == "" {
		request.Status = domain.RequestStatusNew
	}
	if request.Type == "" {
		request.Type = domain.RequestTypeCorrective
	}
	if request.Priority == "" {
		request.Priority = domain.RequestPriorityMedium
	}
	if request.EquipmentID == 0 {
		request.EquipmentID = 1
	}
	if request.RequesterID == 0 {
		request.RequesterID = 5
	}
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	env.reqRepo.items[request.ID] = request
	return request
}
