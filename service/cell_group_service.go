package service

import (
	"database/sql"
	"errors"
	"time"

	"active-teams-api/common"
	"active-teams-api/model"
	"active-teams-api/repository"
)

// CellGroupService handles small-group meetings: membership and the
// recurring meeting schedule.
type CellGroupService struct {
	repo       repository.ICellGroupRepository
	personRepo repository.IPersonRepository
}

func NewCellGroupService(repo repository.ICellGroupRepository, personRepo repository.IPersonRepository) *CellGroupService {
	return &CellGroupService{repo: repo, personRepo: personRepo}
}

func (s *CellGroupService) CreateCellGroup(group *model.CellGroup) error {
	return s.repo.CreateCellGroup(group)
}

// ListCellGroups applies the role-based visibility policy uniformly: admins
// and registrants see every group, plain users only the groups they lead.
func (s *CellGroupService) ListCellGroups(callerID int, callerRole string) ([]*model.CellGroup, error) {
	switch callerRole {
	case string(model.RoleAdmin), string(model.RoleRegistrant):
		return s.repo.GetAllCellGroups()
	default:
		return s.repo.GetCellGroupsByLeader(callerID)
	}
}

func (s *CellGroupService) GetCellGroup(id int) (*model.CellGroup, error) {
	group, err := s.repo.GetCellGroupByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return group, nil
}

// AddMember enforces that only the group's leader, a registrant or an admin
// may change membership.
func (s *CellGroupService) AddMember(groupID, personID, callerID int, callerRole string) error {
	group, err := s.GetCellGroup(groupID)
	if err != nil {
		return err
	}
	if err := s.authorizeMembershipChange(group, callerID, callerRole); err != nil {
		return err
	}
	if _, err := s.personRepo.GetPersonByID(personID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return err
	}
	return s.repo.AddMember(groupID, personID)
}

func (s *CellGroupService) RemoveMember(groupID, personID, callerID int, callerRole string) error {
	group, err := s.GetCellGroup(groupID)
	if err != nil {
		return err
	}
	if err := s.authorizeMembershipChange(group, callerID, callerRole); err != nil {
		return err
	}
	if err := s.repo.RemoveMember(groupID, personID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *CellGroupService) GetMembers(groupID int) ([]*model.CellGroupMember, error) {
	if _, err := s.GetCellGroup(groupID); err != nil {
		return nil, err
	}
	return s.repo.GetMembers(groupID)
}

func (s *CellGroupService) authorizeMembershipChange(group *model.CellGroup, callerID int, callerRole string) error {
	if callerRole == string(model.RoleAdmin) || callerRole == string(model.RoleRegistrant) {
		return nil
	}
	if group.LeaderID == callerID {
		return nil
	}
	return common.ErrForbidden
}

// UpcomingMeetingDates computes the next count occurrence dates for a group
// starting from (and including) the given reference day. Dates are
// normalized to midnight UTC.
func UpcomingMeetingDates(group *model.CellGroup, from time.Time, count int) []time.Time {
	if count <= 0 {
		return nil
	}

	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	// Roll forward to the group's weekday.
	offset := (group.Weekday - int(day.Weekday()) + 7) % 7
	next := day.AddDate(0, 0, offset)

	interval := group.IntervalWeeks
	if interval < 1 {
		interval = 1
	}

	dates := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		dates = append(dates, next.AddDate(0, 0, i*7*interval))
	}
	return dates
}

// GetUpcomingMeetings resolves the group and returns its next count
// meeting dates from today.
func (s *CellGroupService) GetUpcomingMeetings(groupID, count int) ([]time.Time, error) {
	group, err := s.GetCellGroup(groupID)
	if err != nil {
		return nil, err
	}
	return UpcomingMeetingDates(group, time.Now(), count), nil
}
