package storage

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/puscasale/MAP-SocialNetwork/internal/models"
	"github.com/puscasale/MAP-SocialNetwork/internal/pagination"
)

// timeLayout is the ISO-8601 local date-time representation used by the
// legacy data files, e.g. 2023-11-05T14:30:00.
const timeLayout = "2006-01-02T15:04:05"

// FileStore implements the user and friendship ports over the legacy
// line-based text files:
//
//	users:       id;firstName;lastName
//	friendships: userId1 userId2 timestamp
//
// The whole data set is loaded into an in-memory store at construction and
// each write rewrites the affected file, which is how the legacy variant
// behaved. The format predates both credentials and friendship requests:
// emails and passwords are not persisted, and every stored friendship row
// is an established (approved) one; pending and rejected requests live
// only in memory. Messages have no legacy file and are memory-only too.
type FileStore struct {
	mem             *MemoryStore
	usersPath       string
	friendshipsPath string
}

// NewFileStore loads the store from the two files, creating them when
// absent.
func NewFileStore(usersPath, friendshipsPath string) (*FileStore, error) {
	s := &FileStore{
		mem:             NewMemoryStore(),
		usersPath:       usersPath,
		friendshipsPath: friendshipsPath,
	}
	if err := s.loadUsers(); err != nil {
		return nil, fmt.Errorf("loading users from %s: %w", usersPath, err)
	}
	if err := s.loadFriendships(); err != nil {
		return nil, fmt.Errorf("loading friendships from %s: %w", friendshipsPath, err)
	}
	return s, nil
}

// Users returns the store's UserRepository view.
func (s *FileStore) Users() UserRepository { return &fileUserRepo{s} }

// Friendships returns the store's FriendshipRepository view.
func (s *FileStore) Friendships() FriendshipRepository { return &fileFriendshipRepo{s} }

// Messages returns the store's MessageRepository view (memory-only).
func (s *FileStore) Messages() MessageRepository { return s.mem.Messages() }

// Repositories exposes the store through the port bundle.
func (s *FileStore) Repositories() Repositories {
	return Repositories{Users: s.Users(), Friendships: s.Friendships(), Messages: s.Messages()}
}

// WithinTx satisfies TxManager with the same single-writer caveats as the
// in-memory store; the files are rewritten after the callback succeeds.
func (s *FileStore) WithinTx(ctx context.Context, fn func(r Repositories) error) error {
	if err := fn(s.mem.Repositories()); err != nil {
		return err
	}
	if err := s.saveUsers(ctx); err != nil {
		return err
	}
	return s.saveFriendships(ctx)
}

func (s *FileStore) loadUsers() error {
	lines, err := readLines(s.usersPath)
	if err != nil {
		return err
	}
	ctx := context.Background()
	for _, line := range lines {
		fields := strings.Split(line, ";")
		if len(fields) < 3 {
			return fmt.Errorf("malformed user line %q", line)
		}
		id, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return fmt.Errorf("malformed user id %q: %w", fields[0], err)
		}
		user := models.User{FirstName: fields[1], LastName: fields[2]}
		user.ID = uint(id)
		if err := s.mem.Users().Create(ctx, &user); err != nil {
			return err
		}
	}
	return nil
}

func (s *FileStore) loadFriendships() error {
	lines, err := readLines(s.friendshipsPath)
	if err != nil {
		return err
	}
	ctx := context.Background()
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return fmt.Errorf("malformed friendship line %q", line)
		}
		a, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return fmt.Errorf("malformed user id %q: %w", fields[0], err)
		}
		b, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return fmt.Errorf("malformed user id %q: %w", fields[1], err)
		}
		ts, err := time.ParseInLocation(timeLayout, fields[2], time.Local)
		if err != nil {
			return fmt.Errorf("malformed timestamp %q: %w", fields[2], err)
		}
		friendship := models.Friendship{
			RequesterID: uint(a),
			RecipientID: uint(b),
			Status:      models.FriendshipStatusApproved,
		}
		friendship.CreatedAt = ts
		if err := s.mem.Friendships().Create(ctx, &friendship); err != nil {
			return err
		}
	}
	return nil
}

func (s *FileStore) saveUsers(ctx context.Context) error {
	users, err := s.mem.Users().GetAll(ctx)
	if err != nil {
		return err
	}
	lines := make([]string, 0, len(users))
	for _, u := range users {
		lines = append(lines, fmt.Sprintf("%d;%s;%s", u.ID, u.FirstName, u.LastName))
	}
	return writeLines(s.usersPath, lines)
}

func (s *FileStore) saveFriendships(ctx context.Context) error {
	friendships, err := s.mem.Friendships().GetAll(ctx)
	if err != nil {
		return err
	}
	lines := make([]string, 0, len(friendships))
	for _, f := range friendships {
		if f.Status != models.FriendshipStatusApproved {
			continue
		}
		lines = append(lines, fmt.Sprintf("%d %d %s",
			f.RequesterID, f.RecipientID, f.CreatedAt.Format(timeLayout)))
	}
	return writeLines(s.friendshipsPath, lines)
}

func readLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func writeLines(path string, lines []string) error {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}

// fileUserRepo delegates to the in-memory view and rewrites the users file
// after every successful mutation.
type fileUserRepo struct {
	s *FileStore
}

func (r *fileUserRepo) Create(ctx context.Context, user *models.User) error {
	if err := r.s.mem.Users().Create(ctx, user); err != nil {
		return err
	}
	return r.s.saveUsers(ctx)
}

func (r *fileUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return r.s.mem.Users().GetByID(ctx, id)
}

func (r *fileUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.s.mem.Users().GetByEmail(ctx, email)
}

func (r *fileUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	return r.s.mem.Users().GetAll(ctx)
}

func (r *fileUserRepo) GetAllPaged(ctx context.Context, p pagination.Pageable) (pagination.Page[models.User], error) {
	return r.s.mem.Users().GetAllPaged(ctx, p)
}

func (r *fileUserRepo) Update(ctx context.Context, user *models.User) error {
	if err := r.s.mem.Users().Update(ctx, user); err != nil {
		return err
	}
	return r.s.saveUsers(ctx)
}

func (r *fileUserRepo) Delete(ctx context.Context, id uint) error {
	if err := r.s.mem.Users().Delete(ctx, id); err != nil {
		return err
	}
	return r.s.saveUsers(ctx)
}

// fileFriendshipRepo delegates to the in-memory view and rewrites the
// friendships file after every successful mutation.
type fileFriendshipRepo struct {
	s *FileStore
}

func (r *fileFriendshipRepo) Create(ctx context.Context, friendship *models.Friendship) error {
	if err := r.s.mem.Friendships().Create(ctx, friendship); err != nil {
		return err
	}
	return r.s.saveFriendships(ctx)
}

func (r *fileFriendshipRepo) GetByPair(ctx context.Context, a, b uint) (*models.Friendship, error) {
	return r.s.mem.Friendships().GetByPair(ctx, a, b)
}

func (r *fileFriendshipRepo) GetAll(ctx context.Context) ([]models.Friendship, error) {
	return r.s.mem.Friendships().GetAll(ctx)
}

func (r *fileFriendshipRepo) GetAllPaged(ctx context.Context, p pagination.Pageable) (pagination.Page[models.Friendship], error) {
	return r.s.mem.Friendships().GetAllPaged(ctx, p)
}

func (r *fileFriendshipRepo) GetFriendsOfPaged(ctx context.Context, p pagination.Pageable, userID uint) (pagination.Page[models.Friendship], error) {
	return r.s.mem.Friendships().GetFriendsOfPaged(ctx, p, userID)
}

func (r *fileFriendshipRepo) GetPendingFor(ctx context.Context, recipientID uint) ([]models.Friendship, error) {
	return r.s.mem.Friendships().GetPendingFor(ctx, recipientID)
}

func (r *fileFriendshipRepo) Update(ctx context.Context, friendship *models.Friendship) error {
	if err := r.s.mem.Friendships().Update(ctx, friendship); err != nil {
		return err
	}
	return r.s.saveFriendships(ctx)
}

func (r *fileFriendshipRepo) DeleteByPair(ctx context.Context, a, b uint) error {
	if err := r.s.mem.Friendships().DeleteByPair(ctx, a, b); err != nil {
		return err
	}
	return r.s.saveFriendships(ctx)
}

func (r *fileFriendshipRepo) DeleteAllForUser(ctx context.Context, userID uint) error {
	if err := r.s.mem.Friendships().DeleteAllForUser(ctx, userID); err != nil {
		return err
	}
	return r.s.saveFriendships(ctx)
}
