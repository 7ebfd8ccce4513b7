package components

var numericNames = map[int]string{
	1:   "RPL_WELCOME",
	2:   "RPL_YOURHOST",
	3:   "RPL_CREATED",
	4:   "RPL_MYINFO",
	5:   "RPL_ISUPPORT",
	10:  "RPL_BOUNCE",
	221: "RPL_UMODEIS",
	251: "RPL_LUSERCLIENT",
	252: "RPL_LUSEROP",
	253: "RPL_LUSERUNKNOWN",
	254: "RPL_LUSERCHANNELS",
	255: "RPL_LUSERME",
	265: "RPL_LOCALUSERS",
	266: "RPL_GLOBALUSERS",
	301: "RPL_AWAY",
	305: "RPL_UNAWAY",
	306: "RPL_NOWAWAY",
	311: "RPL_WHOISUSER",
	312: "RPL_WHOISSERVER",
	315: "RPL_ENDOFWHO",
	318: "RPL_ENDOFWHOIS",
	319: "RPL_WHOISCHANNELS",
	321: "RPL_LISTSTART",
	322: "RPL_LIST",
	323: "RPL_LISTEND",
	324: "RPL_CHANNELMODEIS",
	331: "RPL_NOTOPIC",
	332: "RPL_TOPIC",
	333: "RPL_TOPICWHOTIME",
	341: "RPL_INVITING",
	352: "RPL_WHOREPLY",
	353: "RPL_NAMREPLY",
	366: "RPL_ENDOFNAMES",
	372: "RPL_MOTD",
	375: "RPL_MOTDSTART",
	376: "RPL_ENDOFMOTD",
	381: "RPL_YOUREOPER",
	401: "ERR_NOSUCHNICK",
	402: "ERR_NOSUCHSERVER",
	403: "ERR_NOSUCHCHANNEL",
	404: "ERR_CANNOTSENDTOCHAN",
	405: "ERR_TOOMANYCHANNELS",
	421: "ERR_UNKNOWNCOMMAND",
	422: "ERR_NOMOTD",
	431: "ERR_NONICKNAMEGIVEN",
	432: "ERR_ERRONEUSNICKNAME",
	433: "ERR_NICKNAMEINUSE",
	441: "ERR_USERNOTINCHANNEL",
	442: "ERR_NOTONCHANNEL",
	451: "ERR_NOTREGISTERED",
	461: "ERR_NEEDMOREPARAMS",
	462: "ERR_ALREADYREGISTERED",
	464: "ERR_PASSWDMISMATCH",
	465: "ERR_YOUREBANNEDCREEP",
	471: "ERR_CHANNELISFULL",
	473: "ERR_INVITEONLYCHAN",
	474: "ERR_BANNEDFROMCHAN",
	475: "ERR_BADCHANNELKEY",
	481: "ERR_NOPRIVILEGES",
	482: "ERR_CHANOPRIVSNEEDED",
	900: "RPL_LOGGEDIN",
	901: "RPL_LOGGEDOUT",
	903: "RPL_SASLSUCCESS",
	904: "ERR_SASLFAIL",
	905: "ERR_SASLTOOLONG",
	906: "ERR_SASLABORTED",
	907: "ERR_SASLALREADY",
}
