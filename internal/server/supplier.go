package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	supplierdomain "github.com/smallbiznis/procura/internal/supplier/domain"
)

func (s *Server) CreateSupplier(c *gin.Context) {
	var req supplierdomain.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	ctx := orgScope(c, req.OrganizationUUID)
	supplier, err := s.supplierSvc.Create(ctx, currentUserUUID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, supplier)
}

func (s *Server) ListSuppliers(c *gin.Context) {
	orgUUID := strings.TrimSpace(c.Query("organization_uuid"))
	if orgUUID == "" {
		AbortWithError(c, supplierdomain.ErrInvalidOrganization)
		return
	}

	suppliers, err := s.supplierSvc.List(orgScope(c, orgUUID), currentUserUUID(c), orgUUID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, suppliers)
}

func (s *Server) GetSupplier(c *gin.Context) {
	orgUUID := strings.TrimSpace(c.Query("organization_uuid"))
	if orgUUID == "" {
		AbortWithError(c, supplierdomain.ErrInvalidOrganization)
		return
	}

	supplier, err := s.supplierSvc.GetByUUID(orgScope(c, orgUUID), currentUserUUID(c), orgUUID, c.Param("uuid"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, supplier)
}
