package service

import (
	"testing"
	"time"

	"active-teams-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCellGroupRepo struct{ mock.Mock }

func (m *mockCellGroupRepo) CreateCellGroup(group *model.CellGroup) error {
	args := m.Called(group)
	return args.Error(0)
}
func (m *mockCellGroupRepo) GetCellGroupByID(id int) (*model.CellGroup, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CellGroup), args.Error(1)
}
func (m *mockCellGroupRepo) GetAllCellGroups() ([]*model.CellGroup, error) {
	args := m.Called()
	return args.Get(0).([]*model.CellGroup), args.Error(1)
}
func (m *mockCellGroupRepo) GetCellGroupsByLeader(leaderID int) ([]*model.CellGroup, error) {
	args := m.Called(leaderID)
	return args.Get(0).([]*model.CellGroup), args.Error(1)
}
func (m *mockCellGroupRepo) AddMember(groupID, personID int) error {
	args := m.Called(groupID, personID)
	return args.Error(0)
}
func (m *mockCellGroupRepo) RemoveMember(groupID, personID int) error {
	args := m.Called(groupID, personID)
	return args.Error(0)
}
func (m *mockCellGroupRepo) GetMembers(groupID int) ([]*model.CellGroupMember, error) {
	args := m.Called(groupID)
	return args.Get(0).([]*model.CellGroupMember), args.Error(1)
}

func TestUpcomingMeetingDates(t *testing.T) {
	// Wednesday, every week.
	group := &model.CellGroup{Weekday: 3, IntervalWeeks: 1}
	// 2026-08-03 is a Monday.
	from := time.Date(2026, 8, 3, 10, 30, 0, 0, time.UTC)

	dates := UpcomingMeetingDates(group, from, 3)
	require.Len(t, dates, 3)

	assert.Equal(t, "2026-08-05", dates[0].Format("2006-01-02"))
	assert.Equal(t, "2026-08-12", dates[1].Format("2006-01-02"))
	assert.Equal(t, "2026-08-19", dates[2].Format("2006-01-02"))
	for _, d := range dates {
		assert.Equal(t, time.Wednesday, d.Weekday())
		assert.False(t, d.Before(from.Truncate(24*time.Hour)))
	}
}

func TestUpcomingMeetingDates_SameDayCounts(t *testing.T) {
	// When the reference day is the meeting weekday, it is the first date.
	group := &model.CellGroup{Weekday: int(time.Monday), IntervalWeeks: 1}
	from := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC) // a Monday

	dates := UpcomingMeetingDates(group, from, 1)
	require.Len(t, dates, 1)
	assert.Equal(t, "2026-08-03", dates[0].Format("2006-01-02"))
}

func TestUpcomingMeetingDates_Biweekly(t *testing.T) {
	group := &model.CellGroup{Weekday: int(time.Friday), IntervalWeeks: 2}
	from := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)

	dates := UpcomingMeetingDates(group, from, 3)
	require.Len(t, dates, 3)
	assert.Equal(t, "2026-08-07", dates[0].Format("2006-01-02"))
	assert.Equal(t, "2026-08-21", dates[1].Format("2006-01-02"))
	assert.Equal(t, "2026-09-04", dates[2].Format("2006-01-02"))
}

func TestUpcomingMeetingDates_ZeroCount(t *testing.T) {
	group := &model.CellGroup{Weekday: 1, IntervalWeeks: 1}
	assert.Nil(t, UpcomingMeetingDates(group, time.Now(), 0))
}

func TestCellGroupService_ListCellGroups_RoleFilter(t *testing.T) {
	all := []*model.CellGroup{{ID: 1}, {ID: 2}}
	mine := []*model.CellGroup{{ID: 2}}

	t.Run("admin sees all", func(t *testing.T) {
		mockRepo := new(mockCellGroupRepo)
		mockRepo.On("GetAllCellGroups").Return(all, nil).Once()

		svc := NewCellGroupService(mockRepo, nil)
		groups, err := svc.ListCellGroups(9, string(model.RoleAdmin))

		assert.NoError(t, err)
		assert.Len(t, groups, 2)
		mockRepo.AssertExpectations(t)
	})

	t.Run("registrant sees all", func(t *testing.T) {
		mockRepo := new(mockCellGroupRepo)
		mockRepo.On("GetAllCellGroups").Return(all, nil).Once()

		svc := NewCellGroupService(mockRepo, nil)
		_, err := svc.ListCellGroups(9, string(model.RoleRegistrant))

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("plain user sees only groups they lead", func(t *testing.T) {
		mockRepo := new(mockCellGroupRepo)
		mockRepo.On("GetCellGroupsByLeader", 9).Return(mine, nil).Once()

		svc := NewCellGroupService(mockRepo, nil)
		groups, err := svc.ListCellGroups(9, string(model.RoleUser))

		assert.NoError(t, err)
		assert.Len(t, groups, 1)
		mockRepo.AssertExpectations(t)
	})
}

func TestCellGroupService_MembershipAuthorization(t *testing.T) {
	group := &model.CellGroup{ID: 5, LeaderID: 9}
	svc := NewCellGroupService(nil, nil)

	assert.NoError(t, svc.authorizeMembershipChange(group, 9, string(model.RoleUser)), "leader may edit")
	assert.NoError(t, svc.authorizeMembershipChange(group, 1, string(model.RoleAdmin)), "admin may edit")
	assert.NoError(t, svc.authorizeMembershipChange(group, 1, string(model.RoleRegistrant)), "registrant may edit")
	assert.Error(t, svc.authorizeMembershipChange(group, 4, string(model.RoleUser)), "other users may not")
}
