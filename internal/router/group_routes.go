// Package router registers the HTTP routes.
// This file defines group lifecycle, membership and number selection.
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterGroupRoutes registers group routes (authenticated).
func (rt *Router) RegisterGroupRoutes(rg *gin.RouterGroup) {
	groupGroup := rg.Group("/group")
	{
		// lifecycle
		groupGroup.POST("/createGroup", rt.handlers.Group.CreateGroup)
		groupGroup.POST("/updateGroup", rt.handlers.Group.UpdateGroup)
		groupGroup.POST("/deleteGroup", rt.handlers.Group.DeleteGroup)
		groupGroup.GET("/getGroupInfo", rt.handlers.Group.GetGroupInfo)
		groupGroup.GET("/listMyGroups", rt.handlers.Group.ListMyGroups)

		// membership
		groupGroup.POST("/addMember", rt.handlers.Group.AddMember)
		groupGroup.POST("/joinGroup", rt.handlers.Group.JoinGroup)
		groupGroup.POST("/leaveGroup", rt.handlers.Group.LeaveGroup)
		groupGroup.GET("/getGroupMemberList", rt.handlers.Group.GetGroupMemberList)

		// number pool
		groupGroup.POST("/selectNumber", rt.handlers.Group.SelectNumber)
	}
}
