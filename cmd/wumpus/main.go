// Hunt the Wumpus on top of the tecs runtime. Games are entities, player
// commands are events dispatched through the world, and the board can be
// saved to and restored from a scene file.
package main

import (
	"bufio"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"pkg.world.dev/tecs"
	"pkg.world.dev/tecs/types"
)

type RoomID int

func (r RoomID) isValid() bool {
	return r >= 1 && r <= 8
}

type GameState struct {
	ArrowCount     int
	WumpusLocation RoomID
	PlayerLocation RoomID
	IsWumpusDead   bool
	Message        string
}

func (g GameState) isGameOver() bool {
	if g.IsWumpusDead {
		return true
	}
	return g.ArrowCount == 0 || g.WumpusLocation == g.PlayerLocation
}

// Game is the archetype backing one running game.
type Game struct {
	State GameState
}

type moveEvent struct {
	Game types.EntityID
	Room RoomID
}

type fireEvent struct {
	Game types.EntityID
	Room RoomID
}

type newGameEvent struct{}

type gameEvent any

func handleNewGame(w *tecs.World[gameEvent], e gameEvent) {
	if _, ok := e.(newGameEvent); !ok {
		return
	}
	playerAt := randomRoom(0)
	id := tecs.Spawn(w, Game{State: GameState{
		PlayerLocation: playerAt,
		WumpusLocation: randomRoom(playerAt),
		ArrowCount:     5,
	}})
	fmt.Println("new game started with ID", id)
}

func handleMove(w *tecs.World[gameEvent], e gameEvent) {
	m, ok := e.(moveEvent)
	if !ok || !m.Room.isValid() {
		return
	}
	game, ok := tecs.GetComponentMut[GameState](w, m.Game)
	if !ok {
		return
	}
	defer game.Close()
	if game.Get().isGameOver() {
		return
	}

	s := game.Ptr()
	s.PlayerLocation = m.Room
	if s.PlayerLocation == s.WumpusLocation {
		s.Message = "You woke the Wumpus. It ate you. You lose."
	}
}

func handleFire(w *tecs.World[gameEvent], e gameEvent) {
	f, ok := e.(fireEvent)
	if !ok || !f.Room.isValid() {
		return
	}
	game, ok := tecs.GetComponentMut[GameState](w, f.Game)
	if !ok {
		return
	}
	defer game.Close()
	if game.Get().isGameOver() {
		return
	}

	s := game.Ptr()
	if f.Room == s.WumpusLocation {
		s.IsWumpusDead = true
		s.Message = "The Wumpus has been killed. You win!"
	}
	s.ArrowCount--
	if s.ArrowCount == 0 && !s.IsWumpusDead {
		s.Message = "You ran out of arrows. Your death is inevitable. You lose."
	}
}

const sceneFile = "wumpus.scene.json"

var gameID types.EntityID

func main() {
	world := tecs.NewWorld[gameEvent]()
	tecs.Register[Game](world)
	world.WithHandler(handleNewGame).
		WithHandler(handleMove).
		WithHandler(handleFire)

	for {
		fmt.Println(inputLoop(world))
	}
}

const helpText = `Commands are:
	new game
		to create a new game
	play [X]
		to start playing the game with the ID X
	move [1-8]
		to move your character to the given room
	shoot [1-8]
		to fire an arrow at the given room
	look
		to check what room you're in and listen for the wumpus
	save
		to write every running game to ` + sceneFile + `
	load
		to restore the games saved in ` + sceneFile + `
`

func inputLoop(world *tecs.World[gameEvent]) string {
	cmd := getCmd()
	if len(cmd) == 2 {
		switch {
		case cmd[0] == "new" && cmd[1] == "game":
			world.Submit(newGameEvent{})
			return "you want to start a new game"
		case cmd[0] == "play":
			id, err := strconv.Atoi(cmd[1])
			if err != nil {
				return fmt.Sprintf("unknown game id %v", cmd[1])
			}
			gameID = types.EntityID(id)
			return fmt.Sprintf("now playing game %d", gameID)
		case cmd[0] == "move":
			target, err := strconv.Atoi(cmd[1])
			if err != nil {
				return fmt.Sprintf("unknown target room %v", cmd[1])
			}
			world.Submit(moveEvent{Game: gameID, Room: RoomID(target)})
			return "move command registered"
		case cmd[0] == "shoot" || cmd[0] == "fire":
			target, err := strconv.Atoi(cmd[1])
			if err != nil {
				return fmt.Sprintf("unknown target room %v", cmd[1])
			}
			world.Submit(fireEvent{Game: gameID, Room: RoomID(target)})
			return "fire command registered"
		}
	} else if len(cmd) == 1 {
		switch cmd[0] {
		case "help":
			fmt.Printf("%s\n", helpText)
		case "look", "listen":
			return look(world)
		case "save":
			return saveGames(world)
		case "load":
			return loadGames(world)
		}
	}

	return "unknown command. type 'help' for help"
}

func look(world *tecs.World[gameEvent]) string {
	ref, ok := tecs.GetComponent[GameState](world, gameID)
	if !ok {
		return fmt.Sprintf("no game with id %d", gameID)
	}
	game := ref.Get()
	ref.Close()

	if game.isGameOver() {
		fmt.Println("This game is over")
		return game.Message
	}
	fmt.Printf("You are in room %d.\n", game.PlayerLocation)
	dramaticPause()
	fmt.Printf("Adjacent rooms are %v\n", worldMap[game.PlayerLocation])
	dramaticPause()
	fmt.Println("It is very dark...")
	dramaticPause()
	fmt.Println("You listen carefully...")
	dramaticPause()
	adj := "faint"
	if isAdjacent(game.PlayerLocation, game.WumpusLocation) {
		adj = "loud"
	}
	return fmt.Sprintf("You hear deep, %s snoring.", adj)
}

func saveGames(world *tecs.World[gameEvent]) string {
	bz, err := world.EncodeScene(tecs.SceneFromWorld(world))
	if err != nil {
		return fmt.Sprintf("unable to save: %v", err)
	}
	if err := os.WriteFile(sceneFile, bz, 0o600); err != nil {
		return fmt.Sprintf("unable to save: %v", err)
	}
	return fmt.Sprintf("saved %d game(s)", world.EntityCount())
}

func loadGames(world *tecs.World[gameEvent]) string {
	bz, err := os.ReadFile(sceneFile)
	if err != nil {
		return fmt.Sprintf("unable to load: %v", err)
	}
	scene, err := world.DecodeScene(bz)
	if err != nil {
		return fmt.Sprintf("unable to load: %v", err)
	}
	ids := make([]string, 0, scene.Len())
	for _, id := range scene.Entities() {
		ids = append(ids, strconv.FormatUint(uint64(id), 10))
	}
	return "restored game(s) with ID(s) " + strings.Join(ids, ", ")
}

func dramaticPause() {
	time.Sleep(time.Second)
}

func getCmd() []string {
	fmt.Print(">")
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Scan()
	input := scanner.Text()
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
	return strings.Split(input, " ")
}

// The game map takes place on the vertices of a cube.
var worldMap = map[RoomID][3]RoomID{
	1: {2, 4, 8},
	2: {1, 3, 7},
	3: {2, 4, 6},
	4: {1, 3, 5},
	5: {8, 4, 6},
	6: {5, 3, 7},
	7: {8, 2, 6},
	8: {1, 7, 5},
}

func isAdjacent(a, b RoomID) bool {
	ns, ok := worldMap[a]
	if !ok {
		return false
	}
	return b == ns[0] || b == ns[1] || b == ns[2]
}

func randomRoom(butNot RoomID) RoomID {
	n := rand.Intn(8) + 1
	if RoomID(n) == butNot {
		n--
		if n == 0 {
			n = 8
		}
	}
	return RoomID(n)
}
