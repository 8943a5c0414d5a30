package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/bmarinov/gym_go_server/internal/model"
	"github.com/bmarinov/gym_go_server/internal/model/dto"
	"github.com/bmarinov/gym_go_server/internal/repository"
)

var ErrMemberNotFound = errors.New("member not found")

type MemberService struct {
	memberRepo *repository.MemberRepository
}

func NewMemberService(memberRepo *repository.MemberRepository) *MemberService {
	return &MemberService{memberRepo: memberRepo}
}

func (s *MemberService) Create(req *dto.CreateMemberRequest) (*model.Member, error) {
	member := &model.Member{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Nickname:    req.Nickname,
		Description: req.Description,
	}
	if err := s.memberRepo.Create(member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *MemberService) Get(id int64) (*model.Member, error) {
	member, err := s.memberRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

func (s *MemberService) List(includeDeleted bool) ([]*model.Member, error) {
	if includeDeleted {
		return s.memberRepo.FindAllIncludingDeleted()
	}
	return s.memberRepo.FindAll()
}

func (s *MemberService) Update(id int64, req *dto.UpdateMemberRequest) (*model.Member, error) {
	fields := map[string]interface{}{}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.Nickname != nil {
		fields["nickname"] = *req.Nickname
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}

	if len(fields) > 0 {
		rows, err := s.memberRepo.UpdateFields(id, fields)
		if err != nil {
			return nil, err
		}
		if rows == 0 {
			return nil, ErrMemberNotFound
		}
	}
	return s.Get(id)
}

func (s *MemberService) SoftDelete(id int64) (*dto.UpdateResult, error) {
	rows, err := s.memberRepo.SoftDelete(id)
	if err != nil {
		return nil, err
	}
	return &dto.UpdateResult{RowsAffected: rows}, nil
}

func (s *MemberService) Restore(id int64) (*dto.UpdateResult, error) {
	rows, err := s.memberRepo.Restore(id)
	if err != nil {
		return nil, err
	}
	return &dto.UpdateResult{RowsAffected: rows}, nil
}

func (s *MemberService) HardDelete(id int64) (*dto.UpdateResult, error) {
	rows, err := s.memberRepo.HardDelete(id)
	if err != nil {
		return nil, err
	}
	return &dto.UpdateResult{RowsAffected: rows}, nil
}
