package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-tokenomics/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Distribution endpoints (public read access)
		v1.GET("/distribution/stats", handler.GetDistributionStats)
		v1.GET("/distribution/schedule/:category", handler.GetAllocationSchedule)
		v1.GET("/distribution/upcoming", handler.GetUpcomingReleases)

		// Voting power (public read access)
		v1.GET("/voting-power/:address", handler.GetVotingPower)

		// Delegation (requires authentication, JWT callers manage their own address only)
		v1.PUT("/delegations/:address", middleware.Auth(authCfg), handler.SetDelegation)
		v1.DELETE("/delegations/:address", middleware.Auth(authCfg), handler.ClearDelegation)

		// Proposal endpoints (public read access)
		v1.GET("/proposals", handler.ListProposals)
		v1.GET("/proposals/:id", handler.GetProposal)
		v1.GET("/proposals/:id/votes", handler.ListVotes)

		// Proposal lifecycle (requires authentication)
		v1.POST("/proposals", middleware.Auth(authCfg), handler.CreateProposal)
		v1.POST("/proposals/:id/votes", middleware.Auth(authCfg), handler.CastVote)
		v1.POST("/proposals/:id/queue", middleware.Auth(authCfg), handler.QueueProposal)
		v1.POST("/proposals/:id/execute", middleware.Auth(authCfg), handler.ExecuteProposal)
		v1.POST("/proposals/:id/cancel", middleware.Auth(authCfg), handler.CancelProposal)

		// Vesting grant endpoints (public read access)
		v1.GET("/grants", handler.ListGrants)
		v1.GET("/grants/:id", handler.GetGrant)

		// Vesting grant management (requires API key authentication only)
		v1.POST("/grants", middleware.APIKeyAuth(authCfg), handler.CreateGrant)
		v1.POST("/grants/:id/release", middleware.Auth(authCfg), handler.ReleaseGrant)
		v1.POST("/grants/:id/revoke", middleware.APIKeyAuth(authCfg), handler.RevokeGrant)
	}
}
