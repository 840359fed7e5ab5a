package shell

// ZshPlugin is the zsh plugin source. zsh keeps duplicate stack entries only
// with pushd_ignore_dups unset, which cdd relies on for its visit counts.
const ZshPlugin = `# cdd shell plugin, generated by "cdd init zsh"
# Source this file from your ~/.zshrc:
#   source ~/.config/cdd/cdd.plugin.zsh

unsetopt pushd_ignore_dups

cdd() {
  case "$1" in
    init|setup|help|completion|-h|--help|--version) command cdd "$@"; return ;;
  esac
  local _cdd_out
  _cdd_out="$(dirs -l -p | command cdd --shell zsh "$@")" || return
  eval "$_cdd_out"
}
`
