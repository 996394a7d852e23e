package constant

// Logo is the banner printed in the root command help.
const Logo = `     _           _                     _
  __| | __ _ ___| |__   __ _ _ __ __ _| |__
 / _` + "`" + ` |/ _` + "`" + ` / __| '_ \ / _` + "`" + ` | '__/ _` + "`" + ` | '_ \
| (_| | (_| \__ \ | | | (_| | | | (_| | |_) |
 \__,_|\__,_|___/_| |_|\__, |_|  \__,_|_.__/
                       |___/`
