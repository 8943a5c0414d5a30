package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/bmarinov/gym_go_server/internal/model"
	"github.com/bmarinov/gym_go_server/internal/model/dto"
	"github.com/bmarinov/gym_go_server/internal/repository"
)

var (
	ErrMemberMembershipNotFound = errors.New("member membership not found")
	ErrInvalidDate              = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidMonth             = errors.New("month must be between 1 and 12")
)

// Result messages surfaced to the UI on subtract/add. Callers branch on the
// Success flag, not on these strings, but the UI displays them as-is.
const (
	msgMembershipNotFound   = "Member membership not found"
	msgTrainingsNotTracked  = "Trainings not tracked for this membership"
	msgNoTrainingsRemaining = "No trainings remaining"
	msgCannotExceedTotal    = "Cannot exceed total trainings"
)

// LedgerService maintains the training-session balance of member memberships
// and answers activity and expiration queries.
type LedgerService struct {
	mmRepo   *repository.MemberMembershipRepository
	planRepo *repository.MembershipRepository
	logRepo  *repository.TrainingLogRepository
}

func NewLedgerService(
	mmRepo *repository.MemberMembershipRepository,
	planRepo *repository.MembershipRepository,
	logRepo *repository.TrainingLogRepository,
) *LedgerService {
	return &LedgerService{
		mmRepo:   mmRepo,
		planRepo: planRepo,
		logRepo:  logRepo,
	}
}

// Create inserts a purchase. The plan's session count is copied into both
// total and remaining at this point; later edits to the plan never touch the
// purchased membership. A missing plan or a time-based plan leaves both
// counters null ("not tracked").
func (s *LedgerService) Create(req *dto.CreateMemberMembershipRequest) (*model.MemberMembership, error) {
	start, err := time.Parse(model.DateLayout, req.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	mm := &model.MemberMembership{
		MemberID:     req.MemberID,
		MembershipID: req.MembershipID,
		StartDate:    start,
	}
	if req.EndDate != "" {
		end, err := time.Parse(model.DateLayout, req.EndDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		mm.EndDate = &end
	}

	plan, err := s.planRepo.FindByID(req.MembershipID)
	switch {
	case err == nil:
		if plan.Trainings != nil {
			total := *plan.Trainings
			remaining := *plan.Trainings
			mm.TotalTrainings = &total
			mm.RemainingTrainings = &remaining
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Untracked membership, counters stay null
	default:
		return nil, err
	}

	if err := s.mmRepo.Create(mm); err != nil {
		return nil, err
	}
	return mm, nil
}

// SubtractTraining consumes one session. The decrement is a single
// conditional update in the repository, so a zero balance can never go
// negative regardless of interleaving.
func (s *LedgerService) SubtractTraining(id int64) (*dto.TrainingResult, error) {
	mm, err := s.mmRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.TrainingResult{Success: false, Error: msgMembershipNotFound}, nil
		}
		return nil, err
	}

	if mm.RemainingTrainings == nil {
		return &dto.TrainingResult{Success: true, Message: msgTrainingsNotTracked}, nil
	}

	rows, err := s.mmRepo.DecrementRemaining(id)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return &dto.TrainingResult{Success: false, Error: msgNoTrainingsRemaining}, nil
	}

	if err := s.appendLog(id, model.TrainingActionSubtract); err != nil {
		return nil, err
	}
	return s.trainingResult(id)
}

// AddTraining reverses one consumed session, capped at the plan snapshot.
func (s *LedgerService) AddTraining(id int64) (*dto.TrainingResult, error) {
	mm, err := s.mmRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.TrainingResult{Success: false, Error: msgMembershipNotFound}, nil
		}
		return nil, err
	}

	if mm.RemainingTrainings == nil || mm.TotalTrainings == nil {
		return &dto.TrainingResult{Success: false, Error: msgTrainingsNotTracked}, nil
	}

	rows, err := s.mmRepo.IncrementRemaining(id)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return &dto.TrainingResult{Success: false, Error: msgCannotExceedTotal}, nil
	}

	if err := s.appendLog(id, model.TrainingActionAdd); err != nil {
		return nil, err
	}
	return s.trainingResult(id)
}

func (s *LedgerService) appendLog(memberMembershipID int64, action string) error {
	entry := &model.TrainingLog{
		MemberMembershipID: memberMembershipID,
		UsedAt:             time.Now(),
		Action:             action,
	}
	if err := s.logRepo.Create(entry); err != nil {
		return fmt.Errorf("failed to append training log: %w", err)
	}
	return nil
}

func (s *LedgerService) trainingResult(id int64) (*dto.TrainingResult, error) {
	mm, err := s.mmRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return &dto.TrainingResult{
		Success:            true,
		RemainingTrainings: mm.RemainingTrainings,
		TotalTrainings:     mm.TotalTrainings,
	}, nil
}

// GetLatestActiveMemberships returns the most recently started currently
// active membership per requested member. Members without one are omitted;
// an exact start-date tie returns every tied row.
func (s *LedgerService) GetLatestActiveMemberships(memberIDs []int64) ([]*model.MemberMembership, error) {
	today := model.StartOfDay(time.Now())
	return s.mmRepo.FindLatestActive(memberIDs, today)
}

// GetExpirationsByMonth lists memberships ending inside the given month,
// member embedded, ordered by end date.
func (s *LedgerService) GetExpirationsByMonth(year, month int) ([]*model.MemberMembership, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}
	return s.mmRepo.FindExpiringInMonth(year, time.Month(month))
}

// GetTrainingLogs returns the audit trail for one membership, newest first.
func (s *LedgerService) GetTrainingLogs(memberMembershipID int64) ([]*model.TrainingLog, error) {
	return s.logRepo.FindByMemberMembership(memberMembershipID)
}

func (s *LedgerService) Get(id int64) (*model.MemberMembership, error) {
	mm, err := s.mmRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberMembershipNotFound
		}
		return nil, err
	}
	return mm, nil
}

func (s *LedgerService) List(includeDeleted bool) ([]*model.MemberMembership, error) {
	if includeDeleted {
		return s.mmRepo.FindAllIncludingDeleted()
	}
	return s.mmRepo.FindAll()
}

func (s *LedgerService) ListByMember(memberID int64) ([]*model.MemberMembership, error) {
	return s.mmRepo.FindByMember(memberID)
}

// Update changes the date range. The training counters are a creation-time
// snapshot and are deliberately not updatable here.
func (s *LedgerService) Update(id int64, req *dto.UpdateMemberMembershipRequest) (*model.MemberMembership, error) {
	fields := map[string]interface{}{}
	if req.StartDate != nil {
		start, err := time.Parse(model.DateLayout, *req.StartDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		fields["start_date"] = start
	}
	if req.EndDate != nil {
		if *req.EndDate == "" {
			fields["end_date"] = nil
		} else {
			end, err := time.Parse(model.DateLayout, *req.EndDate)
			if err != nil {
				return nil, ErrInvalidDate
			}
			fields["end_date"] = end
		}
	}

	if len(fields) > 0 {
		rows, err := s.mmRepo.UpdateFields(id, fields)
		if err != nil {
			return nil, err
		}
		if rows == 0 {
			return nil, ErrMemberMembershipNotFound
		}
	}
	return s.Get(id)
}

func (s *LedgerService) SoftDelete(id int64) (*dto.UpdateResult, error) {
	rows, err := s.mmRepo.SoftDelete(id)
	if err != nil {
		return nil, err
	}
	return &dto.UpdateResult{RowsAffected: rows}, nil
}

func (s *LedgerService) Restore(id int64) (*dto.UpdateResult, error) {
	rows, err := s.mmRepo.Restore(id)
	if err != nil {
		return nil, err
	}
	return &dto.UpdateResult{RowsAffected: rows}, nil
}

func (s *LedgerService) HardDelete(id int64) (*dto.UpdateResult, error) {
	rows, err := s.mmRepo.HardDelete(id)
	if err != nil {
		return nil, err
	}
	return &dto.UpdateResult{RowsAffected: rows}, nil
}
