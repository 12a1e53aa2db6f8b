package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/udisondev/rpgbattle/internal/game/battle"
	"github.com/udisondev/rpgbattle/internal/game/combat"
	"github.com/udisondev/rpgbattle/internal/game/skill"
	"github.com/udisondev/rpgbattle/internal/model"
)

var (
	errNoBattle   = errors.New("you are not in a battle; use fight <enemy>")
	errInBattle   = errors.New("finish the current battle first")
	errNeedTarget = errors.New("missing argument")
)

// Default returns the game command table.
func Default() *Table {
	var t *Table
	commands := []Command{
		{Name: "fight", Aliases: []string{"f"}, Usage: "<enemy>", Help: "start a battle", Handler: fight},
		{Name: "attack", Aliases: []string{"a"}, Help: "attack with your weapon", Handler: attack},
		{Name: "cast", Aliases: []string{"c"}, Usage: "<skill>", Help: "cast a known skill", Handler: cast},
		{Name: "status", Aliases: []string{"s"}, Help: "show the battle or your character", Handler: status},
		{Name: "skills", Help: "list skills and unlock levels", Handler: skills},
		{Name: "weapons", Help: "list weapons and level requirements", Handler: weapons},
		{Name: "enemies", Help: "list enemies", Handler: enemies},
		{Name: "learn", Usage: "<skill>", Help: "learn an unlocked skill", Handler: learn},
		{Name: "equip", Usage: "<weapon>", Help: "equip an unlocked weapon", Handler: equip},
		{Name: "help", Aliases: []string{"?"}, Help: "show this help", Handler: func(*Session, []string) (string, error) {
			return t.Help(), nil
		}},
	}
	t, err := NewTable(commands)
	if err != nil {
		panic(fmt.Sprintf("command table: %v", err))
	}
	return t
}

func fight(s *Session, args []string) (string, error) {
	if s.InBattle() {
		return "", errInBattle
	}
	if len(args) == 0 {
		return "", fmt.Errorf("%w: enemy", errNeedTarget)
	}
	def, ok := s.Content.Enemy(strings.ToLower(args[0]))
	if !ok {
		return "", fmt.Errorf("no enemy named %q", args[0])
	}

	var sb strings.Builder
	if s.Player.IsDefeated() {
		s.Player.FillPools()
		sb.WriteString("You wake up fully rested.\n")
	}
	b, err := battle.New(s.Content, s.Player, def, s.Rand)
	if err != nil {
		return "", err
	}
	if err := s.Battles.Start(b); err != nil {
		return "", fmt.Errorf("%w: %v", errInBattle, err)
	}
	fmt.Fprintf(&sb, "A wild %s appears! %s", def.Name, def.Description)
	return sb.String(), nil
}

func attack(s *Session, _ []string) (string, error) {
	return act(s, battle.Attack())
}

func cast(s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("%w: skill", errNeedTarget)
	}
	return act(s, battle.Cast(args[0]))
}

func act(s *Session, a battle.Action) (string, error) {
	if !s.InBattle() {
		return "", errNoBattle
	}
	b := s.Battle()
	res, err := b.ApplyAction(a)
	if err != nil {
		return "", err
	}
	if res.State.IsTerminal() && s.OnFinish != nil {
		s.OnFinish(b, res)
	}
	return res.Text(), nil
}

func status(s *Session, _ []string) (string, error) {
	if s.InBattle() {
		v := s.Battle().Snapshot()
		return fmt.Sprintf("Round %d\n%s\n%s", v.Round, describe(v.Player), describe(v.Enemy)), nil
	}
	return describe(s.Player.Snapshot()), nil
}

func describe(v model.Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s", v.Name)
	if v.Level > 0 {
		fmt.Fprintf(&sb, " (level %d)", v.Level)
	}
	fmt.Fprintf(&sb, ": life %d/%d", v.Life, v.MaxLife)
	if v.MaxMana > 0 {
		fmt.Fprintf(&sb, ", mana %d/%d, exp %d", v.Mana, v.MaxMana, v.Experience)
	}
	fmt.Fprintf(&sb, ", defense %d", v.Defense)
	if v.WeaponID != "" {
		fmt.Fprintf(&sb, ", weapon %s", v.WeaponID)
	}
	for _, b := range v.Buffs {
		fmt.Fprintf(&sb, "\n  %s (%d)", b.Name, b.Remaining)
	}
	return sb.String()
}

func skills(s *Session, _ []string) (string, error) {
	var lines []string
	for _, def := range s.Content.Skills() {
		mark := " "
		switch {
		case s.Player.Knows(def.ID):
			mark = "*"
		case s.Player.Level() < def.UnlockLevel:
			mark = "-"
		}
		lines = append(lines, fmt.Sprintf("%s %-16s %-8s lvl %-3d mana %-2d %s",
			mark, def.ID, def.Shortcut, def.UnlockLevel, def.ManaCost, def.Description))
	}
	return strings.Join(lines, "\n"), nil
}

func weapons(s *Session, _ []string) (string, error) {
	var lines []string
	for _, w := range s.Content.Weapons() {
		mark := " "
		switch {
		case s.Player.WeaponID() == w.ID:
			mark = "*"
		case s.Player.Level() < w.LevelRequirement:
			mark = "-"
		}
		lines = append(lines, fmt.Sprintf("%s %-16s lvl %-3d %3d %-8s %s",
			mark, w.ID, w.LevelRequirement, w.Damage, w.DamageType, w.Description))
	}
	return strings.Join(lines, "\n"), nil
}

func enemies(s *Session, _ []string) (string, error) {
	var lines []string
	for _, e := range s.Content.Enemies() {
		lines = append(lines, fmt.Sprintf("%-14s lvl %-3d life %-4d %s", e.ID, e.Level, e.MaxLife, e.Name))
	}
	return strings.Join(lines, "\n"), nil
}

func learn(s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("%w: skill", errNeedTarget)
	}
	def, ok := s.Content.Skill(args[0])
	if !ok {
		return "", combat.Reject(combat.ReasonUnknownSkill, "no skill named %q", args[0])
	}
	if err := skill.Learn(s.Player, def); err != nil {
		return "", err
	}
	return fmt.Sprintf("You learned %s.", def.Name), nil
}

func equip(s *Session, args []string) (string, error) {
	if s.InBattle() {
		return "", errInBattle
	}
	if len(args) == 0 {
		return "", fmt.Errorf("%w: weapon", errNeedTarget)
	}
	w, ok := s.Content.Weapon(strings.ToLower(args[0]))
	if !ok {
		return "", combat.Reject(combat.ReasonUnknownWeapon, "no weapon named %q", args[0])
	}
	if err := combat.Equip(s.Player, w); err != nil {
		return "", err
	}
	return fmt.Sprintf("You equip the %s.", w.Name), nil
}
