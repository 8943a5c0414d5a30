package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/bmarinov/gym_go_server/internal/model"
	"github.com/bmarinov/gym_go_server/internal/model/dto"
	"github.com/bmarinov/gym_go_server/internal/repository"
)

var (
	ErrPlanNotFound            = errors.New("membership plan not found")
	ErrPlanTrainingsRequired   = errors.New("training plan requires a positive trainings count")
	ErrPlanTrainingsNotAllowed = errors.New("time plan cannot carry a trainings count")
)

type MembershipService struct {
	planRepo *repository.MembershipRepository
}

func NewMembershipService(planRepo *repository.MembershipRepository) *MembershipService {
	return &MembershipService{planRepo: planRepo}
}

// validatePlan enforces the plan invariant: training plans carry a positive
// session count, time plans carry none.
func validatePlan(planType string, trainings *int) error {
	switch planType {
	case model.PlanTypeTraining:
		if trainings == nil || *trainings <= 0 {
			return ErrPlanTrainingsRequired
		}
	case model.PlanTypeTime:
		if trainings != nil {
			return ErrPlanTrainingsNotAllowed
		}
	}
	return nil
}

func (s *MembershipService) Create(req *dto.CreateMembershipRequest) (*model.Membership, error) {
	if err := validatePlan(req.Type, req.Trainings); err != nil {
		return nil, err
	}

	plan := &model.Membership{
		Name:        req.Name,
		Description: req.Description,
		Days:        req.Days,
		Type:        req.Type,
		Trainings:   req.Trainings,
	}
	if err := s.planRepo.Create(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *MembershipService) Get(id int64) (*model.Membership, error) {
	plan, err := s.planRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *MembershipService) List(includeDeleted bool) ([]*model.Membership, error) {
	if includeDeleted {
		return s.planRepo.FindAllIncludingDeleted()
	}
	return s.planRepo.FindAll()
}

func (s *MembershipService) Update(id int64, req *dto.UpdateMembershipRequest) (*model.Membership, error) {
	plan, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	planType := plan.Type
	if req.Type != nil {
		planType = *req.Type
	}
	trainings := plan.Trainings
	if req.Trainings != nil {
		trainings = req.Trainings
	}
	if planType == model.PlanTypeTime {
		// A type switch back to time drops the count
		if req.Type != nil && req.Trainings == nil {
			trainings = nil
		}
	}
	if err := validatePlan(planType, trainings); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Days != nil {
		fields["days"] = *req.Days
	}
	if req.Type != nil {
		fields["type"] = planType
		fields["trainings"] = trainings
	} else if req.Trainings != nil {
		fields["trainings"] = trainings
	}

	if len(fields) > 0 {
		if _, err := s.planRepo.UpdateFields(id, fields); err != nil {
			return nil, err
		}
	}
	return s.Get(id)
}

func (s *MembershipService) SoftDelete(id int64) (*dto.UpdateResult, error) {
	rows, err := s.planRepo.SoftDelete(id)
	if err != nil {
		return nil, err
	}
	return &dto.UpdateResult{RowsAffected: rows}, nil
}

func (s *MembershipService) Restore(id int64) (*dto.UpdateResult, error) {
	rows, err := s.planRepo.Restore(id)
	if err != nil {
		return nil, err
	}
	return &dto.UpdateResult{RowsAffected: rows}, nil
}

func (s *MembershipService) HardDelete(id int64) (*dto.UpdateResult, error) {
	rows, err := s.planRepo.HardDelete(id)
	if err != nil {
		return nil, err
	}
	return &dto.UpdateResult{RowsAffected: rows}, nil
}
