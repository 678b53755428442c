package service

import (
	"github.com/matinfathi/oo-backend/internal/api/dto"
	"github.com/matinfathi/oo-backend/internal/policy"
	"github.com/matinfathi/oo-backend/internal/repository"
)

// authorize 鉴权失败返回 ErrForbidden
func authorize(p *policy.Principal, action policy.Action, target policy.Target) error {
	if policy.Authorize(p, action, target) != policy.Allow {
		return ErrForbidden
	}
	return nil
}

// checkRequest 按 binding 标签校验请求
func checkRequest(req interface{}) error {
	if err := dto.Validate(req); err != nil {
		return validationError("%s", err.Error())
	}
	return nil
}

// toPage offset 不能为负，limit 缺省 10、最大 100
func toPage(q dto.PageQuery) (repository.Page, error) {
	if q.Offset < 0 {
		return repository.Page{}, validationError("offset must be >= 0")
	}
	if q.Limit < 0 {
		return repository.Page{}, validationError("limit must be >= 0")
	}
	return repository.Page{Offset: q.Offset, Limit: q.Limit}.Normalize(), nil
}

func deleted(entity string) *dto.MessageResponse {
	return &dto.MessageResponse{Message: entity + " deleted successfully."}
}
