package shell

// BashPlugin is the bash plugin source. It defines a cdd function that feeds
// the directory stack to the binary and evaluates the commands it prints.
const BashPlugin = `# cdd shell plugin, generated by "cdd init bash"
# Source this file from your ~/.bashrc:
#   source ~/.config/cdd/cdd.plugin.bash

cdd() {
  case "$1" in
    init|setup|help|completion|-h|--help|--version) command cdd "$@"; return ;;
  esac
  local _cdd_out
  _cdd_out="$(dirs -l -p | command cdd --shell bash "$@")" || return
  eval "$_cdd_out"
}
`
