package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"

	"absensi-sekolah/internal/model"
	"absensi-sekolah/internal/notification"
	"absensi-sekolah/internal/repository"
)

// Fake repository di memori. Unique constraint orang/tanggal dan siswa/bulan
// ditegakkan sama seperti di database.

type fakePersons struct {
	persons []model.Person
	fingers map[string]int
	idents  map[string]int
	err     error
}

func newFakePersons() *fakePersons {
	return &fakePersons{fingers: map[string]int{}, idents: map[string]int{}}
}

func (f *fakePersons) add(p model.Person, fingerprint, identifier string) model.Person {
	f.persons = append(f.persons, p)
	f.fingers[fingerprint] = len(f.persons) - 1
	if identifier != "" {
		f.idents[identifier] = len(f.persons) - 1
	}
	return p
}

func (f *fakePersons) FindByFingerprint(_ context.Context, fp string) (*model.Person, error) {
	if f.err != nil {
		return nil, f.err
	}
	i, ok := f.fingers[fp]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p := f.persons[i]
	return &p, nil
}

func (f *fakePersons) FindByIdentifier(ctx context.Context, id string) (*model.Person, error) {
	if i, ok := f.idents[id]; ok {
		p := f.persons[i]
		return &p, nil
	}
	return f.FindByFingerprint(ctx, id)
}

func (f *fakePersons) FindByRef(_ context.Context, pt model.PersonType, id uint) (*model.Person, error) {
	for _, p := range f.persons {
		if p.Type == pt && p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakePersons) ListActive(_ context.Context, pt model.PersonType) ([]model.Person, error) {
	var out []model.Person
	for _, p := range f.persons {
		if p.Type == pt {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePersons) Delete(context.Context, model.PersonType, uint) error { return nil }

type attendanceKey struct {
	pt   model.PersonType
	id   uint
	date string
}

type fakeAttendance struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*model.Attendance
	byKey  map[attendanceKey]uint
}

func newFakeAttendance() *fakeAttendance {
	return &fakeAttendance{rows: map[uint]*model.Attendance{}, byKey: map[attendanceKey]uint{}}
}

func keyOf(a *model.Attendance) attendanceKey {
	return attendanceKey{a.PersonType, a.PersonID, a.Date}
}

func copyAttendance(a *model.Attendance) *model.Attendance {
	cp := *a
	return &cp
}

func (f *fakeAttendance) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

func (f *fakeAttendance) get(pt model.PersonType, id uint, date string) *model.Attendance {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rid, ok := f.byKey[attendanceKey{pt, id, date}]; ok {
		return copyAttendance(f.rows[rid])
	}
	return nil
}

func (f *fakeAttendance) FindByPersonAndDate(_ context.Context, pt model.PersonType, id uint, date string) (*model.Attendance, error) {
	if a := f.get(pt, id, date); a != nil {
		return a, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAttendance) FindByID(_ context.Context, id uint) (*model.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyAttendance(a), nil
}

func (f *fakeAttendance) Create(_ context.Context, a *model.Attendance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byKey[keyOf(a)]; ok {
		return repository.ErrDuplicate
	}
	f.nextID++
	a.ID = f.nextID
	f.rows[a.ID] = copyAttendance(a)
	f.byKey[keyOf(a)] = a.ID
	return nil
}

func (f *fakeAttendance) MarkIn(_ context.Context, id uint, timeIn string, status model.AttendanceStatus, device *string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok || a.TimeIn != nil {
		return false, nil
	}
	t := timeIn
	a.TimeIn = &t
	a.Status = status
	a.DeviceID = device
	return true, nil
}

func (f *fakeAttendance) MarkOut(_ context.Context, id uint, timeOut string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok || a.TimeIn == nil || a.TimeOut != nil {
		return false, nil
	}
	t := timeOut
	a.TimeOut = &t
	return true, nil
}

func (f *fakeAttendance) UpsertExcused(_ context.Context, a *model.Attendance) (*model.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rid, ok := f.byKey[keyOf(a)]; ok {
		row := f.rows[rid]
		row.Status = a.Status
		row.TimeIn, row.TimeOut, row.DeviceID = nil, nil, nil
		row.LeaveRequestID = a.LeaveRequestID
		return copyAttendance(row), nil
	}
	f.nextID++
	row := copyAttendance(a)
	row.ID = f.nextID
	row.TimeIn, row.TimeOut, row.DeviceID = nil, nil, nil
	f.rows[row.ID] = row
	f.byKey[keyOf(row)] = row.ID
	return copyAttendance(row), nil
}

func (f *fakeAttendance) RepointLeave(_ context.Context, pt model.PersonType, id uint, from, to string, leaveID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.rows {
		if a.PersonType == pt && a.PersonID == id && a.Date >= from && a.Date <= to && a.LeaveRequestID != nil {
			l := leaveID
			a.LeaveRequestID = &l
		}
	}
	return nil
}

func (f *fakeAttendance) UpdateStatus(_ context.Context, id uint, status model.AttendanceStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.Status = status
	return nil
}

func (f *fakeAttendance) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(f.byKey, keyOf(a))
	delete(f.rows, id)
	return nil
}

func (f *fakeAttendance) List(_ context.Context, filter repository.AttendanceFilter) ([]model.Attendance, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Attendance
	for _, a := range f.rows {
		if filter.Date != "" && a.Date != filter.Date {
			continue
		}
		if filter.Month != "" && !strings.HasPrefix(a.Date, filter.Month) {
			continue
		}
		if filter.PersonID != 0 && a.PersonID != filter.PersonID {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, int64(len(out)), nil
}

func (f *fakeAttendance) PersonIDsOnDate(_ context.Context, pt model.PersonType, date string) (map[uint]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[uint]bool{}
	for _, a := range f.rows {
		if a.PersonType == pt && a.Date == date {
			out[a.PersonID] = true
		}
	}
	return out, nil
}

func (f *fakeAttendance) CountStudentStatusByMonth(_ context.Context, month string) ([]repository.StatusCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	type countKey struct {
		id     uint
		status model.AttendanceStatus
	}
	counts := map[countKey]*repository.StatusCount{}
	var out []repository.StatusCount
	for _, a := range f.rows {
		if a.PersonType != model.PersonStudent || !strings.HasPrefix(a.Date, month) {
			continue
		}
		k := countKey{a.PersonID, a.Status}
		if c, ok := counts[k]; ok {
			c.Total++
			continue
		}
		counts[k] = &repository.StatusCount{PersonID: a.PersonID, Status: a.Status, Total: 1}
	}
	for _, c := range counts {
		out = append(out, *c)
	}
	return out, nil
}

type fakeLeaves struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*model.LeaveRequest
}

func newFakeLeaves() *fakeLeaves {
	return &fakeLeaves{rows: map[uint]*model.LeaveRequest{}}
}

func (f *fakeLeaves) sorted() []model.LeaveRequest {
	var out []model.LeaveRequest
	for _, l := range f.rows {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeLeaves) all() []model.LeaveRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sorted()
}

func (f *fakeLeaves) ListOverlapping(_ context.Context, pt model.PersonType, id uint, start, end string) ([]model.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.LeaveRequest
	for _, l := range f.sorted() {
		if l.PersonType == pt && l.PersonID == id && l.StartDate <= end && l.EndDate >= start {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLeaves) Create(_ context.Context, l *model.LeaveRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	l.ID = f.nextID
	cp := *l
	f.rows[l.ID] = &cp
	return nil
}

func (f *fakeLeaves) UpdateRange(_ context.Context, id uint, start, end string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if l, ok := f.rows[id]; ok {
		l.StartDate, l.EndDate = start, end
	}
	return nil
}

func (f *fakeLeaves) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

func (f *fakeLeaves) ListByPerson(_ context.Context, pt model.PersonType, id uint) ([]model.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.LeaveRequest
	for _, l := range f.sorted() {
		if l.PersonType == pt && l.PersonID == id {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLeaves) ListByMonth(_ context.Context, month string) ([]model.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.LeaveRequest
	for _, l := range f.sorted() {
		if l.StartDate <= month+"-31" && l.EndDate >= month+"-01" {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeTransactor struct {
	repos repository.Repositories
}

func (t fakeTransactor) WithinTransaction(_ context.Context, fn func(repository.Repositories) error) error {
	return fn(t.repos)
}

type fakeRules struct {
	rules []model.AttendanceRule
	err   error
}

func (f *fakeRules) add(r model.AttendanceRule) model.AttendanceRule {
	r.ID = uint(len(f.rules) + 1)
	f.rules = append(f.rules, r)
	return r
}

func (f *fakeRules) ListByClass(_ context.Context, classID *uint) ([]model.AttendanceRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.AttendanceRule
	for _, r := range f.rules {
		if sameClass(r.ClassID, classID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRules) ListAll(context.Context) ([]model.AttendanceRule, error) {
	return append([]model.AttendanceRule(nil), f.rules...), nil
}

func (f *fakeRules) GetByID(_ context.Context, id uint) (*model.AttendanceRule, error) {
	for _, r := range f.rules {
		if r.ID == id {
			cp := r
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRules) Create(_ context.Context, r *model.AttendanceRule) error {
	*r = f.add(*r)
	return nil
}

func (f *fakeRules) Update(_ context.Context, r *model.AttendanceRule) error {
	for i := range f.rules {
		if f.rules[i].ID == r.ID {
			f.rules[i] = *r
		}
	}
	return nil
}

func (f *fakeRules) Delete(_ context.Context, id uint) error {
	for i := range f.rules {
		if f.rules[i].ID == id {
			f.rules = append(f.rules[:i], f.rules[i+1:]...)
			return nil
		}
	}
	return nil
}

type rankingKey struct {
	student uint
	month   string
}

type fakeRanking struct {
	mu   sync.Mutex
	rows map[rankingKey]*model.DisciplineRanking
}

func newFakeRanking() *fakeRanking {
	return &fakeRanking{rows: map[rankingKey]*model.DisciplineRanking{}}
}

func (f *fakeRanking) row(id uint, month string) *model.DisciplineRanking {
	k := rankingKey{id, month}
	r, ok := f.rows[k]
	if !ok {
		r = &model.DisciplineRanking{StudentID: id, Month: month}
		r.ID = uint(len(f.rows) + 1)
		f.rows[k] = r
	}
	return r
}

func (f *fakeRanking) get(id uint, month string) model.DisciplineRanking {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.rows[rankingKey{id, month}]; ok {
		return *r
	}
	return model.DisciplineRanking{}
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func (f *fakeRanking) Adjust(_ context.Context, id uint, month string, d model.RankingDelta, w model.ScoreWeights) (*model.DisciplineRanking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.row(id, month)
	r.TotalPresent = clamp(r.TotalPresent + d.Present)
	r.TotalLate = clamp(r.TotalLate + d.Late)
	r.TotalAbsent = clamp(r.TotalAbsent + d.Absent)
	r.Score = w.Score(r.TotalPresent, r.TotalLate, r.TotalAbsent)
	cp := *r
	return &cp, nil
}

func (f *fakeRanking) Replace(_ context.Context, id uint, month string, p, l, a int, w model.ScoreWeights) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.row(id, month)
	r.TotalPresent, r.TotalLate, r.TotalAbsent = p, l, a
	r.Score = w.Score(p, l, a)
	return nil
}

func (f *fakeRanking) ResetMonth(_ context.Context, month string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, r := range f.rows {
		if k.month == month {
			r.TotalPresent, r.TotalLate, r.TotalAbsent, r.Score = 0, 0, 0, 0
		}
	}
	return nil
}

func (f *fakeRanking) Rescore(_ context.Context, month string, w model.ScoreWeights) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, r := range f.rows {
		if k.month == month {
			r.Score = w.Score(r.TotalPresent, r.TotalLate, r.TotalAbsent)
		}
	}
	return nil
}

func (f *fakeRanking) ListByMonth(_ context.Context, month string) ([]model.DisciplineRanking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.DisciplineRanking
	for k, r := range f.rows {
		if k.month == month {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out, nil
}

type fakeSettingRepo struct {
	mu    sync.Mutex
	rows  map[string]model.Setting
	loads int
}

func newFakeSettingRepo(settings ...model.Setting) *fakeSettingRepo {
	f := &fakeSettingRepo{rows: map[string]model.Setting{}}
	for _, s := range settings {
		f.rows[s.Key] = s
	}
	return f
}

func (f *fakeSettingRepo) All(context.Context) ([]model.Setting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	var out []model.Setting
	for _, s := range f.rows {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSettingRepo) Upsert(_ context.Context, s *model.Setting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[s.Key] = *s
	return nil
}

type fakeScanLogs struct {
	mu   sync.Mutex
	logs []model.ScanLog
}

func (f *fakeScanLogs) Create(_ context.Context, l *model.ScanLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l.ID = uint(len(f.logs) + 1)
	f.logs = append(f.logs, *l)
	return nil
}

func (f *fakeScanLogs) List(context.Context, string, string, int) ([]model.ScanLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.ScanLog(nil), f.logs...), nil
}

func (f *fakeScanLogs) last() model.ScanLog {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logs[len(f.logs)-1]
}

type fakeHolidays struct {
	dates map[string]bool
}

func (f *fakeHolidays) GetAll(context.Context) ([]model.Holiday, error) { return nil, nil }
func (f *fakeHolidays) Create(context.Context, *model.Holiday) error    { return nil }
func (f *fakeHolidays) Delete(context.Context, uint) error              { return nil }
func (f *fakeHolidays) IsHoliday(_ context.Context, date string) (bool, error) {
	return f.dates[date], nil
}
func (f *fakeHolidays) GetByID(context.Context, uint) (*model.Holiday, error) {
	return nil, repository.ErrNotFound
}
func (f *fakeHolidays) Update(context.Context, *model.Holiday) error { return nil }

type fakeQueue struct {
	mu   sync.Mutex
	msgs []notification.Message
}

func (q *fakeQueue) Enqueue(m notification.Message) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.msgs = append(q.msgs, m)
	return true
}

func (q *fakeQueue) messages() []notification.Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]notification.Message(nil), q.msgs...)
}

func repositoryFilterMonth(month string) repository.AttendanceFilter {
	return repository.AttendanceFilter{Month: month}
}
