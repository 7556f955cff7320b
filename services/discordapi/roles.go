package discordapi

// GrantRole adds a role to a guild member
func (c *Client) GrantRole(guildID string, userID string, roleID string) *Error {
	err := c.Session.GuildMemberRoleAdd(guildID, userID, roleID)

	if err != nil {
		return ParseDiscordError(err)
	}

	return nil
}

// RevokeRole removes a role from a guild member
func (c *Client) RevokeRole(guildID string, userID string, roleID string) *Error {
	err := c.Session.GuildMemberRoleRemove(guildID, userID, roleID)

	if err != nil {
		return ParseDiscordError(err)
	}

	return nil
}
